package catalog

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

// failingCatalog fails every call.
type failingCatalog struct{}

func (failingCatalog) Get(ctx context.Context, id string) (Record, error) {
	return Record{}, errors.New("upstream unavailable")
}

func (failingCatalog) Search(ctx context.Context, query string, limit int) (Results, error) {
	return Results{}, errors.New("upstream unavailable")
}

func (failingCatalog) List(ctx context.Context, kind collection.Kind) ([]collection.Collection, error) {
	return nil, errors.New("upstream unavailable")
}

func TestChain_Get(t *testing.T) {
	ctx := context.Background()
	first := NewMemory("first", Content{Tracks: []track.Track{{ID: "a", Title: "From first"}}})
	second := NewMemory("second", Content{Tracks: []track.Track{
		{ID: "a", Title: "From second"},
		{ID: "b", Title: "Only in second"},
	}})

	chain := NewChain([]Source{
		{Catalog: failingCatalog{}, DisplayName: "broken"},
		{Catalog: first, DisplayName: "first"},
		{Catalog: second, DisplayName: "second"},
	})

	rec, err := chain.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "From first", rec.Track.Title)

	rec, err = chain.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Only in second", rec.Track.Title)

	_, err = chain.Get(ctx, "c")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestChain_SearchMergesAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	first := NewMemory("first", Content{
		Tracks:      []track.Track{{ID: "a", Title: "Funk One"}},
		Collections: []collection.Collection{{ID: "p", Kind: collection.KindPlaylist, Title: "Funk Mix"}},
	})
	second := NewMemory("second", Content{
		Tracks: []track.Track{{ID: "a", Title: "Funk One"}, {ID: "b", Title: "Funk Two"}},
	})

	chain := NewChain([]Source{
		{Catalog: first, DisplayName: "first"},
		{Catalog: failingCatalog{}, DisplayName: "broken"},
		{Catalog: second, DisplayName: "second"},
	})

	res, err := chain.Search(ctx, "funk", 10)
	require.NoError(t, err)
	require.Len(t, res.Tracks, 2)
	assert.Equal(t, "a", res.Tracks[0].ID)
	assert.Equal(t, "b", res.Tracks[1].ID)
	require.Len(t, res.Playlists, 1)

	res, err = chain.Search(ctx, "funk", 1)
	require.NoError(t, err)
	assert.Len(t, res.Tracks, 1)
}

func TestChain_SearchAllFailed(t *testing.T) {
	chain := NewChain([]Source{{Catalog: failingCatalog{}, DisplayName: "broken"}})
	_, err := chain.Search(context.Background(), "funk", 10)
	assert.Error(t, err)
}

func TestChain_List(t *testing.T) {
	ctx := context.Background()
	fx := fixture(t)
	extra := NewMemory("extra", Content{Collections: []collection.Collection{
		{ID: "pl1", Kind: collection.KindPlaylist, Title: "Duplicate"},
		{ID: "x1", Kind: collection.KindPlaylist, Title: "Extra"},
	}})

	chain := NewChain([]Source{
		{Catalog: fx, DisplayName: "fixture"},
		{Catalog: failingCatalog{}, DisplayName: "broken"},
		{Catalog: extra, DisplayName: "extra"},
	})

	items, err := chain.List(ctx, collection.KindPlaylist)
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"pl1", "pl2", "pl3", "x1"}, ids)
	assert.Equal(t, "Doraemon's Happy Mix", items[0].Title)
}
