package spotify

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/zmb3/spotify/v2"

	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

const (
	kindTrack    = "track"
	kindAlbum    = "album"
	kindPlaylist = "playlist"
	kindArtist   = "artist"

	maxLimit        = 50
	playlistPage    = 100
	maxArtistAlbums = 20
)

// Catalog exposes Spotify through the catalog interface. Record IDs are
// Spotify URIs; IDs that are not Spotify URIs or URLs miss immediately.
type Catalog struct {
	client *Client
}

var _ catalog.Catalog = (*Catalog)(nil)

// NewCatalog creates a catalog over client.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// Get resolves a track, album, playlist or artist.
func (c *Catalog) Get(ctx context.Context, id string) (catalog.Record, error) {
	kind, bare, ok := ParseID(id)
	if !ok {
		return catalog.Record{}, catalog.ErrNotFound
	}

	var (
		rec catalog.Record
		err error
	)
	switch kind {
	case kindTrack:
		var t *track.Track
		t, err = c.getTrack(ctx, spotify.ID(bare))
		rec.Track = t
	case kindAlbum:
		rec.Collection, err = c.getAlbum(ctx, spotify.ID(bare))
	case kindPlaylist:
		rec.Collection, err = c.getPlaylist(ctx, spotify.ID(bare))
	case kindArtist:
		rec.Collection, err = c.getArtist(ctx, spotify.ID(bare))
	}
	if err != nil {
		if isNotFound(err) {
			return catalog.Record{}, errors.Wrapf(catalog.ErrNotFound, "spotify %s %s", kind, bare)
		}
		return catalog.Record{}, errors.Wrapf(err, "failed to get spotify %s %s", kind, bare)
	}
	return rec, nil
}

// Search queries tracks, albums, artists and playlists in one call.
func (c *Catalog) Search(ctx context.Context, query string, limit int) (catalog.Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return catalog.Results{}, nil
	}
	limit = clampLimit(limit)

	var result *spotify.SearchResult
	err := c.client.retry(ctx, func() error {
		r, err := c.client.client.Search(ctx, query,
			spotify.SearchTypeTrack|spotify.SearchTypeAlbum|spotify.SearchTypeArtist|spotify.SearchTypePlaylist,
			spotify.Limit(limit),
			spotify.Market(c.client.market),
		)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return catalog.Results{}, errors.Wrap(err, "failed to search")
	}

	var res catalog.Results
	if result.Tracks != nil {
		for i := range result.Tracks.Tracks {
			res.Tracks = append(res.Tracks, convertTrack(&result.Tracks.Tracks[i]))
		}
	}
	if result.Albums != nil {
		for _, a := range result.Albums.Albums {
			res.Albums = append(res.Albums, convertSimpleAlbum(a))
		}
	}
	if result.Artists != nil {
		for _, a := range result.Artists.Artists {
			res.Artists = append(res.Artists, convertArtist(a))
		}
	}
	if result.Playlists != nil {
		for _, p := range result.Playlists.Playlists {
			res.Playlists = append(res.Playlists, convertSimplePlaylist(p))
		}
	}

	zlog.Debug().Msgf("spotify: search %q: tracks=%d albums=%d artists=%d playlists=%d",
		query, len(res.Tracks), len(res.Albums), len(res.Artists), len(res.Playlists))
	return res, nil
}

// List returns featured playlists or new album releases. Artists are not
// listed.
func (c *Catalog) List(ctx context.Context, kind collection.Kind) ([]collection.Collection, error) {
	switch kind {
	case collection.KindPlaylist:
		var page *spotify.SimplePlaylistPage
		err := c.client.retry(ctx, func() error {
			_, p, err := c.client.client.FeaturedPlaylists(ctx, spotify.Limit(maxLimit), spotify.Country(c.client.market))
			if err != nil {
				return err
			}
			page = p
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get featured playlists")
		}
		out := make([]collection.Collection, 0, len(page.Playlists))
		for _, p := range page.Playlists {
			out = append(out, convertSimplePlaylist(p))
		}
		return out, nil

	case collection.KindAlbum:
		var page *spotify.SimpleAlbumPage
		err := c.client.retry(ctx, func() error {
			p, err := c.client.client.NewReleases(ctx, spotify.Limit(maxLimit), spotify.Country(c.client.market))
			if err != nil {
				return err
			}
			page = p
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get new releases")
		}
		out := make([]collection.Collection, 0, len(page.Albums))
		for _, a := range page.Albums {
			out = append(out, convertSimpleAlbum(a))
		}
		return out, nil

	default:
		return nil, nil
	}
}

func (c *Catalog) getTrack(ctx context.Context, id spotify.ID) (*track.Track, error) {
	var result *spotify.FullTrack
	err := c.client.retry(ctx, func() error {
		t, err := c.client.client.GetTrack(ctx, id, spotify.Market(c.client.market))
		if err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	t := convertTrack(result)
	return &t, nil
}

func (c *Catalog) getAlbum(ctx context.Context, id spotify.ID) (*collection.Collection, error) {
	var result *spotify.FullAlbum
	err := c.client.retry(ctx, func() error {
		a, err := c.client.client.GetAlbum(ctx, id, spotify.Market(c.client.market))
		if err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	col := convertSimpleAlbum(result.SimpleAlbum)
	artwork := firstImage(result.Images)
	for _, st := range result.Tracks.Tracks {
		col.Tracks = append(col.Tracks, track.Track{
			ID:         URI(kindTrack, st.ID),
			Title:      st.Name,
			Artist:     joinArtists(st.Artists),
			Album:      result.Name,
			Duration:   int(st.Duration) / 1000,
			ArtworkURL: artwork,
		})
	}
	return &col, nil
}

func (c *Catalog) getPlaylist(ctx context.Context, id spotify.ID) (*collection.Collection, error) {
	var result *spotify.FullPlaylist
	err := c.client.retry(ctx, func() error {
		p, err := c.client.client.GetPlaylist(ctx, id, spotify.Market(c.client.market))
		if err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	col := convertSimplePlaylist(result.SimplePlaylist)
	col.Description = result.Description

	tracks, err := c.playlistTracks(ctx, id)
	if err != nil {
		return nil, err
	}
	col.Tracks = tracks
	return &col, nil
}

// playlistTracks pages through all playlist items. Episodes are skipped.
func (c *Catalog) playlistTracks(ctx context.Context, id spotify.ID) ([]track.Track, error) {
	var tracks []track.Track
	offset := 0

	for {
		var page *spotify.PlaylistItemPage
		err := c.client.retry(ctx, func() error {
			p, err := c.client.client.GetPlaylistItems(ctx, id,
				spotify.Limit(playlistPage),
				spotify.Offset(offset),
				spotify.Market(c.client.market),
			)
			if err != nil {
				return err
			}
			page = p
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get playlist items")
		}

		for _, item := range page.Items {
			if item.Track.Track != nil && item.Track.Track.ID != "" {
				tracks = append(tracks, convertTrack(item.Track.Track))
			}
		}

		if len(page.Items) < playlistPage {
			break
		}
		offset += playlistPage
	}

	return tracks, nil
}

func (c *Catalog) getArtist(ctx context.Context, id spotify.ID) (*collection.Collection, error) {
	var artist *spotify.FullArtist
	err := c.client.retry(ctx, func() error {
		a, err := c.client.client.GetArtist(ctx, id)
		if err != nil {
			return err
		}
		artist = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	col := convertArtist(*artist)

	var top []spotify.FullTrack
	err = c.client.retry(ctx, func() error {
		t, err := c.client.client.GetArtistsTopTracks(ctx, id, c.client.market)
		if err != nil {
			return err
		}
		top = t
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get top tracks")
	}
	for i := range top {
		col.Tracks = append(col.Tracks, convertTrack(&top[i]))
	}

	var albums *spotify.SimpleAlbumPage
	err = c.client.retry(ctx, func() error {
		a, err := c.client.client.GetArtistAlbums(ctx, id,
			[]spotify.AlbumType{spotify.AlbumTypeAlbum, spotify.AlbumTypeSingle},
			spotify.Limit(maxArtistAlbums),
			spotify.Market(c.client.market),
		)
		if err != nil {
			return err
		}
		albums = a
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get artist albums")
	}
	for _, a := range albums.Albums {
		col.Children = append(col.Children, convertSimpleAlbum(a))
	}

	return &col, nil
}

func convertTrack(t *spotify.FullTrack) track.Track {
	return track.Track{
		ID:         URI(kindTrack, t.ID),
		Title:      t.Name,
		Artist:     joinArtists(t.Artists),
		Album:      t.Album.Name,
		Duration:   int(t.Duration) / 1000,
		ArtworkURL: firstImage(t.Album.Images),
	}
}

func convertSimpleAlbum(a spotify.SimpleAlbum) collection.Collection {
	return collection.Collection{
		ID:          URI(kindAlbum, a.ID),
		Kind:        collection.KindAlbum,
		Title:       a.Name,
		Description: a.ReleaseDate,
		Creator:     joinArtists(a.Artists),
		ArtworkURL:  firstImage(a.Images),
	}
}

func convertSimplePlaylist(p spotify.SimplePlaylist) collection.Collection {
	return collection.Collection{
		ID:         URI(kindPlaylist, p.ID),
		Kind:       collection.KindPlaylist,
		Title:      p.Name,
		Creator:    p.Owner.DisplayName,
		ArtworkURL: firstImage(p.Images),
	}
}

func convertArtist(a spotify.FullArtist) collection.Collection {
	return collection.Collection{
		ID:          URI(kindArtist, a.ID),
		Kind:        collection.KindArtist,
		Title:       a.Name,
		Description: strings.Join(a.Genres, ", "),
		ArtworkURL:  firstImage(a.Images),
		Listeners:   int(a.Followers.Count),
	}
}

func joinArtists(artists []spotify.SimpleArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func firstImage(images []spotify.Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
