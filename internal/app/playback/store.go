package playback

import (
	"sync"
	"time"

	"github.com/osa030/tunedeck/internal/domain/track"
)

const (
	// DefaultVolume is the volume of a fresh store.
	DefaultVolume = 50
	// MaxVolume is the upper bound of the volume range.
	MaxVolume = 100
)

// Snapshot is the full set of store values at one instant.
type Snapshot struct {
	CurrentTrack *track.Track // nil when nothing is loaded
	Status       Status
	Position     int // Seconds into the current track
	Volume       int // 0-100
	Shuffle      bool
	Repeat       RepeatMode
	ContextID    string // Collection the queue was loaded from
	QueueIndex   int    // Natural index of the current track, -1 if none
	QueueLength  int
	Revision     uint64 // Incremented on every completed mutation
}

// HasTrack reports whether a track is loaded.
func (s Snapshot) HasTrack() bool {
	return s.CurrentTrack != nil
}

// IsPlaying reports whether a track is loaded and advancing.
func (s Snapshot) IsPlaying() bool {
	return s.CurrentTrack != nil && s.Status == StatusPlaying
}

// Muted reports whether the volume is zero.
func (s Snapshot) Muted() bool {
	return s.Volume == 0
}

// Duration returns the current track's duration, 0 without a track.
func (s Snapshot) Duration() int {
	if s.CurrentTrack == nil {
		return 0
	}
	return s.CurrentTrack.Duration
}

// state is the mutable store content. Only the controller touches it,
// through Store.update.
type state struct {
	queue     Queue
	status    Status
	position  int
	carry     time.Duration // Sub-second tick remainder
	volume    int
	unmuted   int // Last non-zero volume
	shuffle   bool
	repeat    RepeatMode
	contextID string
}

func (s *state) current() *track.Track {
	return s.queue.Current()
}

// normalize re-establishes the store invariants after a mutation.
func (s *state) normalize() {
	t := s.current()
	if t == nil {
		s.position = 0
		s.carry = 0
		s.status = StatusPaused
		s.contextID = ""
	} else {
		s.position = clamp(s.position, 0, t.Duration)
	}

	s.volume = clamp(s.volume, 0, MaxVolume)
	if s.volume > 0 {
		s.unmuted = s.volume
	}
}

// Store holds the playback state. It is shared by reference between all
// readers; writes go through the Controller only.
type Store struct {
	mu       sync.RWMutex
	s        state
	revision uint64
}

// NewStore creates a store with nothing loaded, paused, at the given volume.
func NewStore(volume int) *Store {
	st := &Store{
		s: state{
			queue:  NewQueue(),
			status: StatusPaused,
			volume: volume,
			repeat: RepeatOff,
		},
	}
	st.s.normalize()
	return st
}

// Snapshot returns the current values.
func (st *Store) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snapshotLocked()
}

// QueueTracks returns the queued tracks in natural order.
func (st *Store) QueueTracks() []*track.Track {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s.queue.Tracks()
}

// UpcomingTracks returns the tracks after the current one in play order.
func (st *Store) UpcomingTracks() []*track.Track {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s.queue.Upcoming()
}

func (st *Store) snapshotLocked() Snapshot {
	return Snapshot{
		CurrentTrack: st.s.current(),
		Status:       st.s.status,
		Position:     st.s.position,
		Volume:       st.s.volume,
		Shuffle:      st.s.shuffle,
		Repeat:       st.s.repeat,
		ContextID:    st.s.contextID,
		QueueIndex:   st.s.queue.CurrentIndex(),
		QueueLength:  st.s.queue.Len(),
		Revision:     st.revision,
	}
}

// update runs fn under the write lock. When fn reports a change, the
// invariants are re-established and the revision is bumped.
func (st *Store) update(fn func(s *state) (EventType, bool)) (Event, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	eventType, changed := fn(&st.s)
	if !changed {
		return Event{}, false
	}

	st.s.normalize()
	st.revision++
	return Event{Type: eventType, Snapshot: st.snapshotLocked()}, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
