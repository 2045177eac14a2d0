package catalog

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunedeck/internal/domain/collection"
)

// Source wraps a catalog with its display name.
type Source struct {
	Catalog     Catalog
	DisplayName string
}

// Chain queries multiple sources in order.
type Chain struct {
	sources []Source
}

// NewChain creates a new source chain.
func NewChain(sources []Source) *Chain {
	return &Chain{
		sources: sources,
	}
}

// Sources returns the chained sources.
func (c *Chain) Sources() []Source {
	return c.sources
}

// Get returns the first hit. Sources that miss or fail are skipped; the
// result is ErrNotFound when none has the record.
func (c *Chain) Get(ctx context.Context, id string) (Record, error) {
	for i, s := range c.sources {
		rec, err := s.Catalog.Get(ctx, id)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrNotFound) {
			zlog.Warn().Msgf("source failed, trying next: index=%d source=%s id=%s error=%v", i+1, s.DisplayName, id, err)
		}
	}
	return Record{}, errors.Wrapf(ErrNotFound, "id %s", id)
}

// Search merges the results of every source, de-duplicated by ID.
func (c *Chain) Search(ctx context.Context, query string, limit int) (Results, error) {
	var merged Results
	seen := make(map[string]bool)

	var lastErr error
	failed := 0
	for _, s := range c.sources {
		res, err := s.Catalog.Search(ctx, query, limit)
		if err != nil {
			zlog.Warn().Msgf("source search failed: source=%s query=%q error=%v", s.DisplayName, query, err)
			lastErr = err
			failed++
			continue
		}

		for _, t := range res.Tracks {
			if seen[t.ID] || full(len(merged.Tracks), limit) {
				continue
			}
			seen[t.ID] = true
			merged.Tracks = append(merged.Tracks, t)
		}
		for _, group := range [][]collection.Collection{res.Albums, res.Artists, res.Playlists} {
			for _, coll := range group {
				if seen[coll.ID] || full(countKind(merged, coll.Kind), limit) {
					continue
				}
				seen[coll.ID] = true
				merged.appendByKind(coll)
			}
		}

		zlog.Debug().Msgf("source search: source=%s query=%q results=%d", s.DisplayName, query, res.Len())
	}

	if failed > 0 && failed == len(c.sources) {
		return Results{}, errors.Wrap(lastErr, "all sources failed to search")
	}
	return merged, nil
}

// List concatenates the listings of every source.
func (c *Chain) List(ctx context.Context, kind collection.Kind) ([]collection.Collection, error) {
	var result []collection.Collection
	seen := make(map[string]bool)
	for _, s := range c.sources {
		items, err := s.Catalog.List(ctx, kind)
		if err != nil {
			zlog.Warn().Msgf("source list failed: source=%s kind=%s error=%v", s.DisplayName, kind, err)
			continue
		}
		for _, item := range items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			result = append(result, item)
		}
	}
	return result, nil
}

func full(n, limit int) bool {
	return limit > 0 && n >= limit
}
