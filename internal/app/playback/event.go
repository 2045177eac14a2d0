package playback

// EventType represents a playback event type.
type EventType int

const (
	EventTrackChanged    EventType = iota // A track was loaded, advanced to or restarted
	EventStateChanged                     // Status, volume, shuffle or repeat changed
	EventPositionChanged                  // Position moved by seek or tick
	EventQueueChanged                     // Tracks were appended to the queue
	EventQueueEnded                       // The last track finished with repeat off
	EventStopped                          // Everything was unloaded
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackChanged:
		return "track_changed"
	case EventStateChanged:
		return "state_changed"
	case EventPositionChanged:
		return "position_changed"
	case EventQueueChanged:
		return "queue_changed"
	case EventQueueEnded:
		return "queue_ended"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Event represents a playback event with the snapshot taken right after
// the mutation that caused it.
type Event struct {
	Type     EventType
	Snapshot Snapshot
}
