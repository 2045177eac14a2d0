package playback

import (
	"context"
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunedeck/internal/domain/track"
)

// Config holds controller configuration.
type Config struct {
	DefaultVolume int           // Volume restored by the fixed mute policy
	MuteRestore   MuteRestore   // Volume restored when unmuting from zero
	TickInterval  time.Duration // Period of the position ticker in Run
	EventBuffer   int           // Capacity of the event channel
	Rand          *rand.Rand    // Shuffle source (seeded from crypto/rand when nil)
}

// Controller interprets transport intents against a Store.
// Operations never fail: out-of-range input is clamped and operations
// without a loaded track are no-ops. Each returns whether the snapshot
// changed.
type Controller struct {
	mu     sync.Mutex // Serializes operations and event sends
	store  *Store
	config Config
	rng    *rand.Rand

	eventCh chan Event
	closed  bool
}

// NewController creates a controller that owns writes to store.
func NewController(store *Store, config Config) *Controller {
	if config.DefaultVolume <= 0 || config.DefaultVolume > MaxVolume {
		config.DefaultVolume = DefaultVolume
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 64
	}

	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(seed()))
	}

	return &Controller{
		store:   store,
		config:  config,
		rng:     rng,
		eventCh: make(chan Event, config.EventBuffer),
	}
}

// Store returns the store the controller writes to.
func (c *Controller) Store() *Store {
	return c.store
}

// Snapshot returns the store's current snapshot.
func (c *Controller) Snapshot() Snapshot {
	return c.store.Snapshot()
}

// Events returns the event channel. It is closed by Close.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Load discards the current queue and plays t from the start.
func (c *Controller) Load(t *track.Track) bool {
	if !playable(t) {
		return false
	}
	return c.LoadQueue([]*track.Track{t}, 0, "")
}

// LoadQueue replaces the queue with tracks and plays tracks[start] from the
// start. contextID names the collection the tracks came from. A queue
// holding an invalid track is rejected whole.
func (c *Controller) LoadQueue(tracks []*track.Track, start int, contextID string) bool {
	for _, t := range tracks {
		if !playable(t) {
			return false
		}
	}

	return c.apply(func(s *state) (EventType, bool) {
		if !s.queue.Reset(tracks, start) {
			return 0, false
		}
		if s.shuffle {
			s.queue.Shuffle(c.rng)
		}
		s.contextID = contextID
		s.position = 0
		s.carry = 0
		s.status = StatusPlaying
		return EventTrackChanged, true
	})
}

// Enqueue appends tracks to the play order. With nothing loaded, the first
// appended track becomes current, paused. Invalid tracks are skipped.
func (c *Controller) Enqueue(tracks ...*track.Track) bool {
	valid := make([]*track.Track, 0, len(tracks))
	for _, t := range tracks {
		if playable(t) {
			valid = append(valid, t)
		}
	}

	return c.apply(func(s *state) (EventType, bool) {
		if len(valid) == 0 {
			return 0, false
		}
		wasEmpty := s.current() == nil
		s.queue.Append(valid...)
		if wasEmpty {
			s.position = 0
			s.status = StatusPaused
			return EventTrackChanged, true
		}
		return EventQueueChanged, true
	})
}

// TogglePlayPause flips the status. Resuming a track that sits at its end
// restarts it.
func (c *Controller) TogglePlayPause() bool {
	return c.apply(func(s *state) (EventType, bool) {
		t := s.current()
		if t == nil {
			return 0, false
		}
		if s.status == StatusPlaying {
			s.status = StatusPaused
			return EventStateChanged, true
		}
		if t.Duration > 0 && s.position >= t.Duration {
			s.position = 0
		}
		s.status = StatusPlaying
		s.carry = 0
		return EventStateChanged, true
	})
}

// Seek moves the position, clamped to [0, duration].
func (c *Controller) Seek(target int) bool {
	return c.apply(func(s *state) (EventType, bool) {
		t := s.current()
		if t == nil {
			return 0, false
		}
		target = clamp(target, 0, t.Duration)
		if target == s.position {
			return 0, false
		}
		s.position = target
		s.carry = 0
		return EventPositionChanged, true
	})
}

// SetVolume sets the volume, clamped to [0, 100].
func (c *Controller) SetVolume(level int) bool {
	return c.apply(func(s *state) (EventType, bool) {
		level = clamp(level, 0, MaxVolume)
		if level == s.volume {
			return 0, false
		}
		s.volume = level
		return EventStateChanged, true
	})
}

// ToggleMute sets a non-zero volume to zero, and a zero volume back to the
// level selected by the mute restore policy.
func (c *Controller) ToggleMute() bool {
	return c.apply(func(s *state) (EventType, bool) {
		if s.volume > 0 {
			s.volume = 0
			return EventStateChanged, true
		}

		restore := c.config.DefaultVolume
		if c.config.MuteRestore == MuteRestoreLast && s.unmuted > 0 {
			restore = s.unmuted
		}
		s.volume = restore
		return EventStateChanged, true
	})
}

// ToggleShuffle flips the shuffle flag and reorders the queue accordingly.
func (c *Controller) ToggleShuffle() bool {
	return c.apply(func(s *state) (EventType, bool) {
		s.shuffle = !s.shuffle
		if s.shuffle {
			s.queue.Shuffle(c.rng)
		} else {
			s.queue.Unshuffle()
		}
		return EventStateChanged, true
	})
}

// CycleRepeat advances off → context → track → off.
func (c *Controller) CycleRepeat() bool {
	return c.apply(func(s *state) (EventType, bool) {
		s.repeat = s.repeat.next()
		return EventStateChanged, true
	})
}

// Next advances one track. With repeat track it restarts the current
// track; at the end of the queue it wraps with repeat context and stays
// put with repeat off.
func (c *Controller) Next() bool {
	return c.apply(func(s *state) (EventType, bool) {
		return s.skip(true)
	})
}

// Previous retreats one track, with the same repeat rules as Next.
func (c *Controller) Previous() bool {
	return c.apply(func(s *state) (EventType, bool) {
		return s.skip(false)
	})
}

// Stop unloads the queue. Volume, shuffle and repeat are kept.
func (c *Controller) Stop() bool {
	return c.apply(func(s *state) (EventType, bool) {
		if s.queue.Len() == 0 {
			return 0, false
		}
		s.queue.Clear()
		return EventStopped, true
	})
}

// Tick advances the position by elapsed wall-clock time while playing.
// Sub-second remainders carry over to the next tick. A track reaching its
// end restarts (repeat track), advances, or pauses at its end when the
// queue is exhausted with repeat off. A track without length never loops:
// it advances without wrapping or pauses.
func (c *Controller) Tick(elapsed time.Duration) bool {
	if elapsed <= 0 {
		return false
	}

	return c.apply(func(s *state) (EventType, bool) {
		t := s.current()
		if t == nil || s.status != StatusPlaying {
			return 0, false
		}

		s.carry += elapsed
		secs := int(s.carry / time.Second)
		if secs == 0 {
			return 0, false
		}
		s.carry -= time.Duration(secs) * time.Second

		s.position += secs
		if s.position < t.Duration {
			return EventPositionChanged, true
		}

		zlog.Debug().Msgf("playback: track ended: id=%s title=%s repeat=%s", t.ID, t.Title, s.repeat)

		s.carry = 0
		loop := t.Duration > 0
		if s.repeat == RepeatTrack && loop {
			s.position = 0
			return EventTrackChanged, true
		}
		if s.queue.Step(true, s.repeat == RepeatContext && loop) {
			s.position = 0
			return EventTrackChanged, true
		}

		s.position = t.Duration
		s.status = StatusPaused
		return EventQueueEnded, true
	})
}

// Run drives Tick from a wall-clock ticker until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.config.TickInterval)
	defer ticker.Stop()

	last := toWallTime(time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := toWallTime(time.Now())
			elapsed := now.Sub(last)
			last = now
			c.Tick(elapsed)
		}
	}
}

// Close closes the event channel. Operations after Close still mutate the
// store but emit nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.eventCh)
}

// playable reports whether t can be queued.
func playable(t *track.Track) bool {
	return t != nil && t.Validate() == nil
}

// skip implements Next/Previous on the state.
func (s *state) skip(forward bool) (EventType, bool) {
	if s.current() == nil {
		return 0, false
	}

	if s.repeat == RepeatTrack {
		s.position = 0
		s.carry = 0
		s.status = StatusPlaying
		return EventTrackChanged, true
	}

	if !s.queue.Step(forward, s.repeat == RepeatContext) {
		return 0, false
	}
	s.position = 0
	s.carry = 0
	s.status = StatusPlaying
	return EventTrackChanged, true
}

// apply runs a mutation and publishes the resulting event.
func (c *Controller) apply(fn func(s *state) (EventType, bool)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	event, changed := c.store.update(fn)
	if !changed {
		return false
	}
	c.sendEventLocked(event)
	return true
}

// sendEventLocked sends an event without blocking.
// Must be called with c.mu held.
func (c *Controller) sendEventLocked(e Event) {
	if c.closed {
		return
	}
	select {
	case c.eventCh <- e:
	default:
		zlog.Warn().Msgf("playback: event channel full, dropping %s", e.Type)
	}
}

// toWallTime returns the time with the monotonic clock reading stripped so
// differences follow the wall clock.
func toWallTime(t time.Time) time.Time {
	return time.Unix(t.Unix(), int64(t.Nanosecond()))
}

func seed() int64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err == nil {
		return int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return time.Now().UnixNano()
}
