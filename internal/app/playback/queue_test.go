package playback

import (
	"math/rand"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/tunedeck/internal/domain/track"
)

func ids(tracks []*track.Track) []string {
	result := make([]string, 0, len(tracks))
	for _, t := range tracks {
		result = append(result, t.ID)
	}
	return result
}

func TestSpinIndex(t *testing.T) {
	tests := []struct {
		name        string
		fwd         bool
		i, max      int
		wantIndex   int
		wantWrapped bool
	}{
		{name: "forward", fwd: true, i: 0, max: 3, wantIndex: 1},
		{name: "forward wraps", fwd: true, i: 2, max: 3, wantIndex: 0, wantWrapped: true},
		{name: "backward", fwd: false, i: 2, max: 3, wantIndex: 1},
		{name: "backward wraps", fwd: false, i: 0, max: 3, wantIndex: 2, wantWrapped: true},
		{name: "single element", fwd: true, i: 0, max: 1, wantIndex: 0, wantWrapped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, wrapped := spinIndex(tt.fwd, tt.i, tt.max)
			assert.Equal(t, tt.wantIndex, got)
			assert.Equal(t, tt.wantWrapped, wrapped)
		})
	}
}

func TestQueue_Empty(t *testing.T) {
	q := NewQueue()

	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Current())
	assert.Equal(t, -1, q.CurrentIndex())
	assert.Nil(t, q.Upcoming())
	assert.False(t, q.Step(true, true))
}

func TestQueue_Reset(t *testing.T) {
	q := NewQueue()
	tracks := mixTracks()

	assert.False(t, q.Reset(tracks, 3))
	assert.False(t, q.Reset(tracks, -1))
	assert.False(t, q.Reset(nil, 0))
	assert.Equal(t, 0, q.Len())

	require.True(t, q.Reset(tracks, 1))
	assert.Equal(t, "pt2", q.Current().ID)
	if diff := deep.Equal(ids(q.Upcoming()), []string{"pt3"}); diff != nil {
		t.Error(diff)
	}
}

func TestQueue_Append(t *testing.T) {
	q := NewQueue()
	tracks := mixTracks()

	q.Append(tracks[0])
	assert.Equal(t, "pt1", q.Current().ID)

	q.Append(tracks[1:]...)
	if diff := deep.Equal(ids(q.Tracks()), []string{"pt1", "pt2", "pt3"}); diff != nil {
		t.Error(diff)
	}
	assert.Equal(t, 0, q.CurrentIndex())
}

func TestQueue_Step(t *testing.T) {
	q := NewQueue()
	require.True(t, q.Reset(mixTracks(), 2))

	assert.False(t, q.Step(true, false))
	assert.Equal(t, 2, q.CurrentIndex())

	assert.True(t, q.Step(true, true))
	assert.Equal(t, 0, q.CurrentIndex())

	assert.True(t, q.Step(false, true))
	assert.Equal(t, 2, q.CurrentIndex())
}

func TestQueue_ShufflePermutation(t *testing.T) {
	tracks := make([]*track.Track, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		tracks = append(tracks, &track.Track{ID: id, Duration: 60})
	}

	q := NewQueue()
	require.True(t, q.Reset(tracks, 4))
	q.Shuffle(rand.New(rand.NewSource(42)))

	assert.Equal(t, "e", q.Current().ID)
	assert.Equal(t, 4, q.CurrentIndex())
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "f", "g", "h", "i", "j"}, ids(q.Upcoming()))

	q.Unshuffle()
	assert.Equal(t, 4, q.CurrentIndex())
	if diff := deep.Equal(ids(q.Upcoming()), []string{"f", "g", "h", "i", "j"}); diff != nil {
		t.Error(diff)
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	require.True(t, q.Reset(mixTracks(), 0))

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Current())
}
