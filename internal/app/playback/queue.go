package playback

import (
	"math/rand"

	"github.com/osa030/tunedeck/internal/domain/track"
)

// Queue is an ordered list of tracks with a play order.
// order holds indices into tracks (identity, or a permutation while
// shuffling) and pos indexes order. pos is -1 when the queue is empty.
type Queue struct {
	tracks []*track.Track
	order  []int
	pos    int
}

// NewQueue creates an empty queue.
func NewQueue() Queue {
	return Queue{pos: -1}
}

// Len returns the number of tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Current returns the track under the cursor, or nil if the queue is empty.
func (q *Queue) Current() *track.Track {
	if q.pos < 0 || q.pos >= len(q.order) {
		return nil
	}
	return q.tracks[q.order[q.pos]]
}

// CurrentIndex returns the natural index of the current track, or -1.
func (q *Queue) CurrentIndex() int {
	if q.pos < 0 || q.pos >= len(q.order) {
		return -1
	}
	return q.order[q.pos]
}

// Tracks returns a copy of the tracks in natural order.
func (q *Queue) Tracks() []*track.Track {
	result := make([]*track.Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}

// Upcoming returns the tracks after the cursor in play order.
func (q *Queue) Upcoming() []*track.Track {
	if q.pos < 0 {
		return nil
	}
	result := make([]*track.Track, 0, len(q.order)-q.pos-1)
	for _, ix := range q.order[q.pos+1:] {
		result = append(result, q.tracks[ix])
	}
	return result
}

// Reset replaces the queue contents and puts the cursor on start.
// It returns false and leaves the queue untouched if start is out of range.
func (q *Queue) Reset(tracks []*track.Track, start int) bool {
	if start < 0 || start >= len(tracks) {
		return false
	}

	q.tracks = make([]*track.Track, len(tracks))
	copy(q.tracks, tracks)
	q.order = identity(len(tracks))
	q.pos = start
	return true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.tracks = nil
	q.order = nil
	q.pos = -1
}

// Append adds tracks at the end of the play order. On an empty queue the
// cursor lands on the first appended track.
func (q *Queue) Append(tracks ...*track.Track) {
	for _, t := range tracks {
		q.order = append(q.order, len(q.tracks))
		q.tracks = append(q.tracks, t)
	}
	if q.pos < 0 && len(q.order) > 0 {
		q.pos = 0
	}
}

// Shuffle permutes the play order. The current track moves to the front so
// the rest of the queue plays in random order after it.
func (q *Queue) Shuffle(rng *rand.Rand) {
	if len(q.order) == 0 {
		return
	}

	current := q.CurrentIndex()
	rest := make([]int, 0, len(q.tracks))
	for i := range q.tracks {
		if i != current {
			rest = append(rest, i)
		}
	}
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	q.order = append([]int{current}, rest...)
	q.pos = 0
}

// Unshuffle restores natural order, keeping the cursor on the same track.
func (q *Queue) Unshuffle() {
	current := q.CurrentIndex()
	q.order = identity(len(q.tracks))
	q.pos = current
}

// Step moves the cursor one slot. At a boundary it wraps when wrap is true
// and otherwise stays put, returning false.
func (q *Queue) Step(forward, wrap bool) bool {
	if q.pos < 0 {
		return false
	}

	next, wrapped := spinIndex(forward, q.pos, len(q.order))
	if wrapped && !wrap {
		return false
	}

	q.pos = next
	return true
}

// spinIndex spins the index. It returns the newly spun index and whether it
// was spun back around.
func spinIndex(fwd bool, i, max int) (int, bool) {
	if fwd {
		i++

		if i >= max {
			return 0, true
		}
	} else {
		i--

		if i < 0 {
			return max - 1, true
		}
	}

	return i, false
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
