package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/tunedeck/internal/domain/track"
)

func TestCollection_TrackIDs(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []track.Track
		expected []string
	}{
		{
			name:     "empty collection",
			tracks:   []track.Track{},
			expected: []string{},
		},
		{
			name:     "single track",
			tracks:   []track.Track{{ID: "pt1"}},
			expected: []string{"pt1"},
		},
		{
			name:     "multiple tracks",
			tracks:   []track.Track{{ID: "pt1"}, {ID: "pt2"}, {ID: "pt3"}},
			expected: []string{"pt1", "pt2", "pt3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collection{ID: "pl1", Kind: KindPlaylist, Tracks: tt.tracks}
			assert.Equal(t, tt.expected, c.TrackIDs())
		})
	}
}

func TestCollection_TotalDuration(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []track.Track
		expected int
	}{
		{
			name:     "empty collection",
			tracks:   []track.Track{},
			expected: 0,
		},
		{
			name: "happy mix",
			tracks: []track.Track{
				{ID: "pt1", Duration: 195},
				{ID: "pt2", Duration: 175},
				{ID: "pt3", Duration: 245},
			},
			expected: 615,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collection{ID: "pl1", Tracks: tt.tracks}
			assert.Equal(t, tt.expected, c.TotalDuration())
		})
	}
}

func TestCollection_IndexOf(t *testing.T) {
	c := &Collection{
		ID:     "pl1",
		Tracks: []track.Track{{ID: "pt1"}, {ID: "pt2"}},
	}

	assert.Equal(t, 0, c.IndexOf("pt1"))
	assert.Equal(t, 1, c.IndexOf("pt2"))
	assert.Equal(t, -1, c.IndexOf("missing"))
}

func TestCollection_TrackPointers(t *testing.T) {
	c := &Collection{
		ID:     "pl1",
		Tracks: []track.Track{{ID: "pt1"}, {ID: "pt2"}},
	}

	ptrs := c.TrackPointers()
	assert.Len(t, ptrs, 2)
	assert.Same(t, &c.Tracks[1], ptrs[1])
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, KindPlaylist.Valid())
	assert.True(t, KindAlbum.Valid())
	assert.True(t, KindArtist.Valid())
	assert.False(t, Kind("podcast").Valid())
}
