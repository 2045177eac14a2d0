package view

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/app/library"
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
	"github.com/osa030/tunedeck/internal/infra/lastfm"
)

type stubEnricher struct {
	info    *lastfm.ArtistInfo
	similar []lastfm.SimilarArtist
	chart   []lastfm.TopTrack
	err     error
}

func (s *stubEnricher) GetArtistInfo(ctx context.Context, artistName string) (*lastfm.ArtistInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func (s *stubEnricher) GetSimilarArtists(ctx context.Context, artistName string, limit int) ([]lastfm.SimilarArtist, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.similar, nil
}

func (s *stubEnricher) GetChartTopTracks(ctx context.Context, limit int) ([]lastfm.TopTrack, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.chart, nil
}

type brokenCatalog struct{}

func (brokenCatalog) Get(ctx context.Context, id string) (catalog.Record, error) {
	return catalog.Record{}, errors.New("upstream unavailable")
}

func (brokenCatalog) Search(ctx context.Context, query string, limit int) (catalog.Results, error) {
	return catalog.Results{}, errors.New("upstream unavailable")
}

func (brokenCatalog) List(ctx context.Context, kind collection.Kind) ([]collection.Collection, error) {
	return nil, errors.New("upstream unavailable")
}

func newTestBuilder(t *testing.T, enricher Enricher) *Builder {
	t.Helper()
	m, seed, err := catalog.Fixture("fixture")
	require.NoError(t, err)
	opts := Options{}
	if enricher != nil {
		opts.Enricher = enricher
	}
	return NewBuilder(m, library.New(seed.Saved, seed.Following), opts)
}

func tileIDs(tiles []Tile) []string {
	ids := make([]string, len(tiles))
	for i, tile := range tiles {
		ids[i] = tile.ID
	}
	return ids
}

func rowIDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

func TestBuildSidebar(t *testing.T) {
	sb := BuildSidebar(RouteSearch)

	require.Len(t, sb.Items, 3)
	for _, item := range sb.Items {
		assert.Equal(t, item.Route == RouteSearch, item.Active, item.Label)
	}

	for _, item := range BuildSidebar("").Items {
		assert.False(t, item.Active)
	}
}

func TestBuildFooter(t *testing.T) {
	fiesta := &track.Track{ID: "dtt1", Title: "Future Funk Fiesta", Artist: "DJ Dora", Duration: 200}

	tests := []struct {
		name string
		snap playback.Snapshot
		want Footer
	}{
		{
			name: "nothing loaded",
			snap: playback.Snapshot{Volume: 50, QueueIndex: -1},
			want: Footer{
				Title:         NoTrackText,
				Elapsed:       "0:00",
				Total:         "0:00",
				PlayPauseIcon: IconPlay,
				Repeat:        "off",
				RepeatIcon:    IconRepeat,
				Volume:        50,
				VolumeIcon:    IconVolume,
			},
		},
		{
			name: "playing with repeat track and muted",
			snap: playback.Snapshot{
				CurrentTrack: fiesta,
				Status:       playback.StatusPlaying,
				Position:     50,
				Volume:       0,
				Shuffle:      true,
				Repeat:       playback.RepeatTrack,
			},
			want: Footer{
				HasTrack:        true,
				Title:           "Future Funk Fiesta",
				Artist:          "DJ Dora",
				Elapsed:         "0:50",
				Total:           "3:20",
				Position:        50,
				Duration:        200,
				Percent:         25,
				ControlsEnabled: true,
				PlayPauseIcon:   IconPause,
				Shuffle:         true,
				Repeat:          "track",
				RepeatOn:        true,
				RepeatIcon:      IconRepeatOne,
				Muted:           true,
				VolumeIcon:      IconVolumeMute,
			},
		},
		{
			name: "paused with repeat context",
			snap: playback.Snapshot{
				CurrentTrack: fiesta,
				Status:       playback.StatusPaused,
				Position:     200,
				Volume:       70,
				Repeat:       playback.RepeatContext,
			},
			want: Footer{
				HasTrack:        true,
				Title:           "Future Funk Fiesta",
				Artist:          "DJ Dora",
				Elapsed:         "3:20",
				Total:           "3:20",
				Position:        200,
				Duration:        200,
				Percent:         100,
				ControlsEnabled: true,
				PlayPauseIcon:   IconPlay,
				Repeat:          "context",
				RepeatOn:        true,
				RepeatIcon:      IconRepeat,
				Volume:          70,
				VolumeIcon:      IconVolume,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := deep.Equal(BuildFooter(tt.snap), tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestBuilder_Home(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t, nil)

	snap := playback.Snapshot{CurrentTrack: &track.Track{ID: "pt1"}, Status: playback.StatusPlaying, ContextID: "pl1"}
	page, err := b.Home(ctx, snap)
	require.NoError(t, err)

	assert.Equal(t, StateReady, page.State)
	require.Len(t, page.Sections, 2)
	assert.Equal(t, SectionFeatured, page.Sections[0].Title)
	assert.Equal(t, []string{"pl1", "pl2", "pl3"}, tileIDs(page.Sections[0].Tiles))
	assert.True(t, page.Sections[0].Tiles[0].PlayingNow)
	assert.False(t, page.Sections[0].Tiles[1].Active)
	assert.Equal(t, SectionNewReleases, page.Sections[1].Title)
	assert.Equal(t, []string{"al1", "al2"}, tileIDs(page.Sections[1].Tiles))
	assert.Equal(t, "By The Space Cadets", page.Sections[1].Tiles[0].Subtitle)
}

func TestBuilder_HomeTrending(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t, &stubEnricher{chart: []lastfm.TopTrack{
		{Name: "Future Funk", Artist: "DJ Dora"},
		{Name: "Unknown Song", Artist: "Nobody"},
		{Name: "anywhere doorstep", Artist: "Nobita & The Beats"},
	}})

	page, err := b.Home(ctx, playback.Snapshot{})
	require.NoError(t, err)
	require.Len(t, page.Sections, 3)
	assert.Equal(t, SectionTrending, page.Sections[2].Title)
	assert.Equal(t, []string{"t1", "t2"}, rowIDs(page.Sections[2].Rows))
}

func TestBuilder_HomeTrendingFailureIsIgnored(t *testing.T) {
	b := newTestBuilder(t, &stubEnricher{err: errors.New("offline")})

	page, err := b.Home(context.Background(), playback.Snapshot{})
	require.NoError(t, err)
	assert.Len(t, page.Sections, 2)
}

func TestBuilder_Search(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t, nil)

	t.Run("empty query", func(t *testing.T) {
		page, err := b.Search(ctx, playback.Snapshot{}, "  ")
		require.NoError(t, err)
		assert.Equal(t, StateReady, page.State)
		assert.Empty(t, page.Tracks)
		require.Len(t, page.Tabs, 4)
		for _, tab := range page.Tabs {
			assert.Zero(t, tab.Count)
		}
	})

	t.Run("query with results", func(t *testing.T) {
		fiesta := &track.Track{ID: "dtt1"}
		page, err := b.Search(ctx, playback.Snapshot{CurrentTrack: fiesta, Status: playback.StatusPaused}, "future funk")
		require.NoError(t, err)

		assert.Equal(t, "future funk", page.Query)
		assert.Contains(t, rowIDs(page.Tracks), "dtt1")
		assert.Equal(t, TabTracks, page.Tabs[0].Name)
		assert.Equal(t, len(page.Tracks), page.Tabs[0].Count)

		for _, row := range page.Tracks {
			assert.Equal(t, row.ID == "dtt1", row.Active)
			assert.False(t, row.PlayingNow)
		}
	})
}

func TestBuilder_Library(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t, nil)

	page, err := b.Library(ctx, playback.Snapshot{})
	require.NoError(t, err)

	assert.Equal(t, []string{"upl1", "upl2"}, tileIDs(page.Playlists))
	assert.Equal(t, []string{"far1"}, tileIDs(page.Artists))
	assert.Equal(t, []string{"sal1"}, tileIDs(page.Albums))
	assert.Equal(t, []string{"lt1"}, rowIDs(page.Tracks))
	assert.Equal(t, "4:02", page.Tracks[0].Duration)
}

func TestBuilder_LibrarySkipsMissingRecords(t *testing.T) {
	m, _, err := catalog.Fixture("fixture")
	require.NoError(t, err)
	b := NewBuilder(m, library.New([]string{"gone", "pl2"}, []string{"ghost"}), Options{})

	page, err := b.Library(context.Background(), playback.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, []string{"pl2"}, tileIDs(page.Playlists))
	assert.Empty(t, page.Artists)
}

func TestBuilder_Artist(t *testing.T) {
	ctx := context.Background()

	t.Run("fixture artist", func(t *testing.T) {
		b := newTestBuilder(t, nil)
		page, err := b.Artist(ctx, playback.Snapshot{}, "ar1")
		require.NoError(t, err)

		assert.Equal(t, StateReady, page.State)
		assert.Equal(t, "DJ Dora", page.Name)
		assert.NotEmpty(t, page.Bio)
		assert.False(t, page.Following)
		assert.Equal(t, []string{"dtt1", "dtt2"}, rowIDs(page.TopTracks))
		assert.Equal(t, "ar1", page.TopTracks[0].ContextID)
		assert.Equal(t, []string{"dal1", "dal2"}, tileIDs(page.Albums))
		assert.Equal(t, "EP - 2023", page.Albums[1].Subtitle)
	})

	t.Run("enriched artist", func(t *testing.T) {
		b := newTestBuilder(t, &stubEnricher{
			info:    &lastfm.ArtistInfo{Name: "Doraemon Beats", Bio: "From the future.", Listeners: 42},
			similar: []lastfm.SimilarArtist{{Name: "DJ Dora", Match: 0.9}},
		})
		page, err := b.Artist(ctx, playback.Snapshot{}, "far1")
		require.NoError(t, err)

		assert.True(t, page.Following)
		assert.Equal(t, "From the future.", page.Bio)
		assert.Equal(t, 42, page.Listeners)
		assert.Equal(t, []string{"DJ Dora"}, page.Similar)
	})

	t.Run("enrichment failure", func(t *testing.T) {
		b := newTestBuilder(t, &stubEnricher{err: errors.New("offline")})
		page, err := b.Artist(ctx, playback.Snapshot{}, "far1")
		require.NoError(t, err)
		assert.Equal(t, StateReady, page.State)
		assert.Empty(t, page.Bio)
	})

	t.Run("not an artist", func(t *testing.T) {
		b := newTestBuilder(t, nil)
		page, err := b.Artist(ctx, playback.Snapshot{}, "pl1")
		require.NoError(t, err)
		assert.Equal(t, StateNotFound, page.State)
	})

	t.Run("unknown id", func(t *testing.T) {
		b := newTestBuilder(t, nil)
		page, err := b.Artist(ctx, playback.Snapshot{}, "nope")
		require.NoError(t, err)
		assert.Equal(t, StateNotFound, page.State)
		assert.Equal(t, "nope", page.ID)
	})
}

func TestBuilder_Collection(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(t, nil)

	snap := playback.Snapshot{CurrentTrack: &track.Track{ID: "pt2"}, Status: playback.StatusPlaying, ContextID: "pl1"}
	page, err := b.Collection(ctx, snap, "pl1")
	require.NoError(t, err)

	assert.Equal(t, StateReady, page.State)
	assert.Equal(t, "Doraemon's Happy Mix", page.Title)
	assert.Equal(t, 3, page.TrackCount)
	assert.Equal(t, "10:15", page.TotalDuration)
	assert.False(t, page.Saved)

	want := []Row{
		{Number: 1, ID: "pt1", Title: "Blue Sky Beats", Artist: "DJ Shizuka", Album: "Playtime", Duration: "3:15", ContextID: "pl1"},
		{Number: 2, ID: "pt2", Title: "Gadget Groove", Artist: "Gian & Suneo", Album: "Neighborhood Sounds", Duration: "2:55", ContextID: "pl1", Active: true, PlayingNow: true},
		{Number: 3, ID: "pt3", Title: "Time Machine Funk", Artist: "Nobita Nobi", Album: "Future Past", Duration: "4:05", ContextID: "pl1"},
	}
	for i := range page.Rows {
		page.Rows[i].ArtworkURL = ""
	}
	if diff := deep.Equal(page.Rows, want); diff != nil {
		t.Error(diff)
	}
}

func TestBuilder_CollectionNotFound(t *testing.T) {
	b := newTestBuilder(t, nil)

	for _, id := range []string{"missing", "pt1"} {
		page, err := b.Collection(context.Background(), playback.Snapshot{}, id)
		require.NoError(t, err)
		assert.Equal(t, StateNotFound, page.State, id)
	}
}

func TestBuilder_CatalogFailure(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder(brokenCatalog{}, library.New(nil, nil), Options{})

	_, err := b.Home(ctx, playback.Snapshot{})
	assert.Error(t, err)
	_, err = b.Collection(ctx, playback.Snapshot{}, "pl1")
	assert.Error(t, err)
	_, err = b.Search(ctx, playback.Snapshot{}, "funk")
	assert.Error(t, err)
}
