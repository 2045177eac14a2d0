// Package catalog provides read access to tracks and collections.
package catalog

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("record not found")

// Record is the result of a lookup. Exactly one field is set.
type Record struct {
	Track      *track.Track
	Collection *collection.Collection
}

// Results holds search results grouped by kind.
type Results struct {
	Tracks    []track.Track
	Albums    []collection.Collection
	Artists   []collection.Collection
	Playlists []collection.Collection
}

// Len returns the total number of results.
func (r Results) Len() int {
	return len(r.Tracks) + len(r.Albums) + len(r.Artists) + len(r.Playlists)
}

// Catalog is the read interface the presentation layer depends on.
type Catalog interface {
	// Get looks up a track or collection by ID. A miss returns ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// Search returns up to limit results per kind.
	Search(ctx context.Context, query string, limit int) (Results, error)

	// List returns the browsable collections of the given kind.
	List(ctx context.Context, kind collection.Kind) ([]collection.Collection, error)
}

// GetTrack looks up a track. A collection with the ID counts as a miss.
func GetTrack(ctx context.Context, c Catalog, id string) (*track.Track, error) {
	rec, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Track == nil {
		return nil, errors.Wrapf(ErrNotFound, "track %s", id)
	}
	return rec.Track, nil
}

// GetCollection looks up a collection. A track with the ID counts as a miss.
func GetCollection(ctx context.Context, c Catalog, id string) (*collection.Collection, error) {
	rec, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Collection == nil {
		return nil, errors.Wrapf(ErrNotFound, "collection %s", id)
	}
	return rec.Collection, nil
}

// appendByKind adds a collection to the matching result group.
func (r *Results) appendByKind(c collection.Collection) {
	switch c.Kind {
	case collection.KindAlbum:
		r.Albums = append(r.Albums, c)
	case collection.KindArtist:
		r.Artists = append(r.Artists, c)
	case collection.KindPlaylist:
		r.Playlists = append(r.Playlists, c)
	}
}
