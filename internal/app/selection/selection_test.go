package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

func TestFlags(t *testing.T) {
	fiesta := &track.Track{ID: "dtt1", Title: "Future Funk Fiesta", Duration: 225}

	tests := []struct {
		name    string
		snap    playback.Snapshot
		trackID string
		want    Flag
	}{
		{
			name:    "nothing loaded",
			snap:    playback.Snapshot{},
			trackID: "dtt1",
			want:    Flag{},
		},
		{
			name:    "loaded and playing",
			snap:    playback.Snapshot{CurrentTrack: fiesta, Status: playback.StatusPlaying},
			trackID: "dtt1",
			want:    Flag{Active: true, PlayingNow: true},
		},
		{
			name:    "loaded and paused",
			snap:    playback.Snapshot{CurrentTrack: fiesta, Status: playback.StatusPaused},
			trackID: "dtt1",
			want:    Flag{Active: true},
		},
		{
			name:    "other track",
			snap:    playback.Snapshot{CurrentTrack: fiesta, Status: playback.StatusPlaying},
			trackID: "dtt2",
			want:    Flag{},
		},
		{
			name:    "same title different id",
			snap:    playback.Snapshot{CurrentTrack: fiesta, Status: playback.StatusPlaying},
			trackID: "t1",
			want:    Flag{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flags(tt.snap, tt.trackID))
		})
	}
}

func TestTileFlags(t *testing.T) {
	current := &track.Track{ID: "pt1"}
	snap := playback.Snapshot{CurrentTrack: current, Status: playback.StatusPlaying, ContextID: "pl1"}

	assert.Equal(t, Flag{Active: true, PlayingNow: true}, TileFlags(snap, "pl1"))
	assert.Equal(t, Flag{}, TileFlags(snap, "pl2"))
	assert.Equal(t, Flag{}, TileFlags(playback.Snapshot{ContextID: "pl1"}, "pl1"))
}

func TestForTracks_OnlyLoadedTrackIsPlayingNow(t *testing.T) {
	c := playback.NewController(playback.NewStore(playback.DefaultVolume), playback.Config{})
	defer c.Close()

	rows := []track.Track{
		{ID: "dtt1", Title: "Future Funk Fiesta", Duration: 200},
		{ID: "dtt2", Title: "Robotic Rhythms", Duration: 242},
	}
	c.Load(&rows[0])

	flags := ForTracks(c.Snapshot(), rows)
	assert.Equal(t, []Flag{{Active: true, PlayingNow: true}, {}}, flags)
}

func TestForTiles(t *testing.T) {
	snap := playback.Snapshot{CurrentTrack: &track.Track{ID: "pt2"}, Status: playback.StatusPaused, ContextID: "pl1"}
	tiles := []collection.Collection{{ID: "pl1"}, {ID: "pl2"}}

	assert.Equal(t, []Flag{{Active: true}, {}}, ForTiles(snap, tiles))
}
