package view

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/app/library"
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/app/timefmt"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
	"github.com/osa030/tunedeck/internal/infra/lastfm"
)

// Home section titles.
const (
	SectionFeatured    = "Featured Playlists"
	SectionNewReleases = "New Releases"
	SectionTrending    = "Trending"
)

// Search tab names.
const (
	TabTracks    = "tracks"
	TabAlbums    = "albums"
	TabArtists   = "artists"
	TabPlaylists = "playlists"
)

// Enricher supplies artist details and charts. It is optional.
type Enricher interface {
	GetArtistInfo(ctx context.Context, artistName string) (*lastfm.ArtistInfo, error)
	GetSimilarArtists(ctx context.Context, artistName string, limit int) ([]lastfm.SimilarArtist, error)
	GetChartTopTracks(ctx context.Context, limit int) ([]lastfm.TopTrack, error)
}

// Options configures a Builder.
type Options struct {
	SearchLimit  int      // Results per search tab
	ChartLimit   int      // Chart entries requested for the Trending section
	SimilarLimit int      // Similar artists shown on the artist page
	Enricher     Enricher // nil disables enrichment
}

// Builder assembles page models. Catalog misses produce StateNotFound
// pages; other catalog failures are returned as errors.
type Builder struct {
	catalog catalog.Catalog
	library *library.Library
	opts    Options
}

// NewBuilder creates a new page builder.
func NewBuilder(cat catalog.Catalog, lib *library.Library, opts Options) *Builder {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 20
	}
	if opts.ChartLimit <= 0 {
		opts.ChartLimit = 10
	}
	if opts.SimilarLimit <= 0 {
		opts.SimilarLimit = 5
	}
	return &Builder{
		catalog: cat,
		library: lib,
		opts:    opts,
	}
}

// HomePage is the landing page.
type HomePage struct {
	State    State     `json:"state"`
	Sections []Section `json:"sections"`
}

// Home builds the home page.
func (b *Builder) Home(ctx context.Context, snap playback.Snapshot) (HomePage, error) {
	playlists, err := b.catalog.List(ctx, collection.KindPlaylist)
	if err != nil {
		return HomePage{}, errors.Wrap(err, "failed to list playlists")
	}
	albums, err := b.catalog.List(ctx, collection.KindAlbum)
	if err != nil {
		return HomePage{}, errors.Wrap(err, "failed to list albums")
	}

	page := HomePage{
		State: StateReady,
		Sections: []Section{
			{Title: SectionFeatured, Tiles: Tiles(snap, playlists)},
			{Title: SectionNewReleases, Tiles: Tiles(snap, albums)},
		},
	}

	if trending := b.trending(ctx); len(trending) > 0 {
		page.Sections = append(page.Sections, Section{
			Title: SectionTrending,
			Rows:  Rows(snap, trending, ""),
		})
	}
	return page, nil
}

// trending resolves chart entries against the catalog. Entries without a
// catalog match are dropped.
func (b *Builder) trending(ctx context.Context) []track.Track {
	if b.opts.Enricher == nil {
		return nil
	}

	chart, err := b.opts.Enricher.GetChartTopTracks(ctx, b.opts.ChartLimit)
	if err != nil {
		zlog.Warn().Msgf("view: chart lookup failed: %v", err)
		return nil
	}

	var tracks []track.Track
	seen := make(map[string]bool)
	for _, entry := range chart {
		res, err := b.catalog.Search(ctx, entry.Name+" "+entry.Artist, 5)
		if err != nil {
			zlog.Debug().Msgf("view: chart entry search failed: %s - %s: %v", entry.Artist, entry.Name, err)
			continue
		}
		for _, t := range res.Tracks {
			if strings.EqualFold(t.Title, entry.Name) && !seen[t.ID] {
				seen[t.ID] = true
				tracks = append(tracks, t)
				break
			}
		}
	}
	return tracks
}

// SearchTab is one result tab.
type SearchTab struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SearchPage holds search results.
type SearchPage struct {
	State     State       `json:"state"`
	Query     string      `json:"query"`
	Tabs      []SearchTab `json:"tabs"`
	Tracks    []Row       `json:"tracks"`
	Albums    []Tile      `json:"albums"`
	Artists   []Tile      `json:"artists"`
	Playlists []Tile      `json:"playlists"`
}

// Search builds the search page. An empty query yields an empty page.
func (b *Builder) Search(ctx context.Context, snap playback.Snapshot, query string) (SearchPage, error) {
	query = strings.TrimSpace(query)
	page := SearchPage{State: StateReady, Query: query}

	var res catalog.Results
	if query != "" {
		var err error
		res, err = b.catalog.Search(ctx, query, b.opts.SearchLimit)
		if err != nil {
			return SearchPage{}, errors.Wrap(err, "failed to search")
		}
	}

	page.Tracks = Rows(snap, res.Tracks, "")
	page.Albums = Tiles(snap, res.Albums)
	page.Artists = Tiles(snap, res.Artists)
	page.Playlists = Tiles(snap, res.Playlists)
	page.Tabs = []SearchTab{
		{Name: TabTracks, Count: len(page.Tracks)},
		{Name: TabAlbums, Count: len(page.Albums)},
		{Name: TabArtists, Count: len(page.Artists)},
		{Name: TabPlaylists, Count: len(page.Playlists)},
	}
	return page, nil
}

// LibraryPage lists the listener's saved items.
type LibraryPage struct {
	State     State  `json:"state"`
	Playlists []Tile `json:"playlists"`
	Artists   []Tile `json:"artists"`
	Albums    []Tile `json:"albums"`
	Tracks    []Row  `json:"tracks"`
}

// Library builds the library page. Saved IDs missing from the catalog are
// skipped.
func (b *Builder) Library(ctx context.Context, snap playback.Snapshot) (LibraryPage, error) {
	var playlists, albums, artists []collection.Collection
	var tracks []track.Track

	for _, id := range b.library.Saved() {
		rec, ok, err := b.lookup(ctx, id)
		if err != nil {
			return LibraryPage{}, err
		}
		if !ok {
			continue
		}
		if rec.Track != nil {
			tracks = append(tracks, *rec.Track)
			continue
		}
		switch rec.Collection.Kind {
		case collection.KindPlaylist:
			playlists = append(playlists, *rec.Collection)
		case collection.KindAlbum:
			albums = append(albums, *rec.Collection)
		case collection.KindArtist:
			artists = append(artists, *rec.Collection)
		}
	}

	for _, id := range b.library.Following() {
		rec, ok, err := b.lookup(ctx, id)
		if err != nil {
			return LibraryPage{}, err
		}
		if ok && rec.Collection != nil && !containsID(artists, id) {
			artists = append(artists, *rec.Collection)
		}
	}

	return LibraryPage{
		State:     StateReady,
		Playlists: Tiles(snap, playlists),
		Artists:   Tiles(snap, artists),
		Albums:    Tiles(snap, albums),
		Tracks:    Rows(snap, tracks, ""),
	}, nil
}

// ArtistPage shows an artist with top tracks and albums.
type ArtistPage struct {
	State      State    `json:"state"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Bio        string   `json:"bio"`
	ArtworkURL string   `json:"artwork_url"`
	Listeners  int      `json:"listeners"`
	Following  bool     `json:"following"`
	TopTracks  []Row    `json:"top_tracks"`
	Albums     []Tile   `json:"albums"`
	Similar    []string `json:"similar"`
}

// Artist builds the artist page.
func (b *Builder) Artist(ctx context.Context, snap playback.Snapshot, id string) (ArtistPage, error) {
	c, ok, err := b.lookupCollection(ctx, id)
	if err != nil {
		return ArtistPage{}, err
	}
	if !ok || c.Kind != collection.KindArtist {
		return ArtistPage{State: StateNotFound, ID: id}, nil
	}

	page := ArtistPage{
		State:      StateReady,
		ID:         c.ID,
		Name:       c.Title,
		Bio:        c.Bio,
		ArtworkURL: c.ArtworkURL,
		Listeners:  c.Listeners,
		Following:  b.library.IsFollowing(c.ID),
		TopTracks:  Rows(snap, c.Tracks, c.ID),
		Albums:     Tiles(snap, c.Children),
		Similar:    c.Similar,
	}
	b.enrichArtist(ctx, &page)
	return page, nil
}

// enrichArtist fills missing details from the enricher. Failures only
// leave the fields empty.
func (b *Builder) enrichArtist(ctx context.Context, page *ArtistPage) {
	if b.opts.Enricher == nil {
		return
	}

	if page.Bio == "" || page.Listeners == 0 {
		info, err := b.opts.Enricher.GetArtistInfo(ctx, page.Name)
		if err != nil {
			zlog.Debug().Msgf("view: artist info lookup failed: %s: %v", page.Name, err)
		} else {
			if page.Bio == "" {
				page.Bio = info.Bio
			}
			if page.Listeners == 0 {
				page.Listeners = info.Listeners
			}
		}
	}

	if len(page.Similar) == 0 {
		similar, err := b.opts.Enricher.GetSimilarArtists(ctx, page.Name, b.opts.SimilarLimit)
		if err != nil {
			zlog.Debug().Msgf("view: similar artists lookup failed: %s: %v", page.Name, err)
			return
		}
		for _, a := range similar {
			page.Similar = append(page.Similar, a.Name)
		}
	}
}

// CollectionPage shows a playlist or album.
type CollectionPage struct {
	State         State           `json:"state"`
	ID            string          `json:"id"`
	Kind          collection.Kind `json:"kind"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Creator       string          `json:"creator"`
	ArtworkURL    string          `json:"artwork_url"`
	TrackCount    int             `json:"track_count"`
	TotalDuration string          `json:"total_duration"` // M:SS
	Saved         bool            `json:"saved"`
	Rows          []Row           `json:"rows"`
}

// Collection builds the playlist/album page.
func (b *Builder) Collection(ctx context.Context, snap playback.Snapshot, id string) (CollectionPage, error) {
	c, ok, err := b.lookupCollection(ctx, id)
	if err != nil {
		return CollectionPage{}, err
	}
	if !ok {
		return CollectionPage{State: StateNotFound, ID: id}, nil
	}

	return CollectionPage{
		State:         StateReady,
		ID:            c.ID,
		Kind:          c.Kind,
		Title:         c.Title,
		Description:   c.Description,
		Creator:       c.Creator,
		ArtworkURL:    c.ArtworkURL,
		TrackCount:    len(c.Tracks),
		TotalDuration: timefmt.Format(c.TotalDuration()),
		Saved:         b.library.IsSaved(c.ID),
		Rows:          Rows(snap, c.Tracks, c.ID),
	}, nil
}

// lookup resolves an ID, reporting a miss as ok=false.
func (b *Builder) lookup(ctx context.Context, id string) (catalog.Record, bool, error) {
	rec, err := b.catalog.Get(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		zlog.Debug().Msgf("view: record not found: %s", id)
		return catalog.Record{}, false, nil
	}
	if err != nil {
		return catalog.Record{}, false, errors.Wrapf(err, "failed to get %s", id)
	}
	return rec, true, nil
}

func (b *Builder) lookupCollection(ctx context.Context, id string) (*collection.Collection, bool, error) {
	rec, ok, err := b.lookup(ctx, id)
	if err != nil || !ok {
		return nil, false, err
	}
	if rec.Collection == nil {
		return nil, false, nil
	}
	return rec.Collection, true, nil
}

func containsID(collections []collection.Collection, id string) bool {
	for _, c := range collections {
		if c.ID == id {
			return true
		}
	}
	return false
}
