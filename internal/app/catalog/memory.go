package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

// Content is a set of records loaded into a Memory catalog.
type Content struct {
	Tracks      []track.Track
	Collections []collection.Collection
	Unlisted    []string // Collection IDs reachable by Get and Search but hidden from List
}

// Memory is an in-memory catalog. Tracks nested in collections and albums
// nested in artists are indexed as well, so they can be looked up by ID.
type Memory struct {
	name string

	mu          sync.RWMutex
	tracks      []*track.Track
	trackIndex  map[string]int
	collections []collection.Collection
	collIndex   map[string]int
	unlisted    map[string]bool
}

// NewMemory creates a memory catalog holding content.
func NewMemory(name string, content Content) *Memory {
	m := &Memory{name: name}
	m.Replace(content)
	return m
}

// Name returns the catalog name.
func (m *Memory) Name() string {
	return m.name
}

// Replace swaps the whole content atomically.
func (m *Memory) Replace(content Content) {
	tracks := make([]*track.Track, 0, len(content.Tracks))
	trackIndex := make(map[string]int)
	addTrack := func(t track.Track) {
		if t.ID == "" {
			return
		}
		if _, ok := trackIndex[t.ID]; ok {
			return
		}
		trackIndex[t.ID] = len(tracks)
		tracks = append(tracks, &t)
	}

	collections := make([]collection.Collection, 0, len(content.Collections))
	collIndex := make(map[string]int)
	var addCollection func(c collection.Collection)
	addCollection = func(c collection.Collection) {
		if c.ID == "" {
			return
		}
		if _, ok := collIndex[c.ID]; ok {
			return
		}
		collIndex[c.ID] = len(collections)
		collections = append(collections, c)
		for _, t := range c.Tracks {
			addTrack(t)
		}
		for _, child := range c.Children {
			addCollection(child)
		}
	}

	for _, t := range content.Tracks {
		addTrack(t)
	}
	for _, c := range content.Collections {
		addCollection(c)
	}

	unlisted := make(map[string]bool, len(content.Unlisted))
	for _, id := range content.Unlisted {
		unlisted[id] = true
	}
	// Nested albums only surface through their artist unless also given
	// at top level.
	topLevel := make(map[string]bool, len(content.Collections))
	for _, c := range content.Collections {
		topLevel[c.ID] = true
	}
	for _, c := range content.Collections {
		for _, child := range c.Children {
			if !topLevel[child.ID] {
				unlisted[child.ID] = true
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks = tracks
	m.trackIndex = trackIndex
	m.collections = collections
	m.collIndex = collIndex
	m.unlisted = unlisted
}

// Get implements Catalog. Track records point at the catalog-owned value,
// which stays valid after a Replace.
func (m *Memory) Get(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if ix, ok := m.trackIndex[id]; ok {
		return Record{Track: m.tracks[ix]}, nil
	}
	if ix, ok := m.collIndex[id]; ok {
		c := cloneCollection(m.collections[ix])
		return Record{Collection: &c}, nil
	}
	return Record{}, errors.Wrapf(ErrNotFound, "%s: id %s", m.name, id)
}

// Search implements Catalog. Matching is fuzzy and case-insensitive over
// title, artist and album; results are ranked by edit distance.
func (m *Memory) Search(ctx context.Context, query string, limit int) (Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Results{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results Results

	targets := make([]string, len(m.tracks))
	for i, t := range m.tracks {
		targets[i] = strings.Join([]string{t.Title, t.Artist, t.Album}, " ")
	}
	for _, ix := range rank(query, targets, limit) {
		results.Tracks = append(results.Tracks, *m.tracks[ix])
	}

	targets = make([]string, len(m.collections))
	for i, c := range m.collections {
		targets[i] = strings.Join([]string{c.Title, c.Creator}, " ")
	}
	for _, ix := range rank(query, targets, 0) {
		c := m.collections[ix]
		if limit > 0 && countKind(results, c.Kind) >= limit {
			continue
		}
		results.appendByKind(cloneCollection(c))
	}

	return results, nil
}

// List implements Catalog.
func (m *Memory) List(ctx context.Context, kind collection.Kind) ([]collection.Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []collection.Collection
	for _, c := range m.collections {
		if c.Kind == kind && !m.unlisted[c.ID] {
			result = append(result, cloneCollection(c))
		}
	}
	return result, nil
}

// Tracks returns every indexed track.
func (m *Memory) Tracks() []track.Track {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]track.Track, len(m.tracks))
	for i, t := range m.tracks {
		result[i] = *t
	}
	return result
}

// rank returns the indices of targets matching query, best first.
// limit <= 0 means no limit.
func rank(query string, targets []string, limit int) []int {
	ranks := fuzzy.RankFindFold(query, targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	indices := make([]int, len(ranks))
	for i, r := range ranks {
		indices[i] = r.OriginalIndex
	}
	return indices
}

func countKind(r Results, kind collection.Kind) int {
	switch kind {
	case collection.KindAlbum:
		return len(r.Albums)
	case collection.KindArtist:
		return len(r.Artists)
	case collection.KindPlaylist:
		return len(r.Playlists)
	default:
		return 0
	}
}

func cloneCollection(c collection.Collection) collection.Collection {
	c.Tracks = append([]track.Track(nil), c.Tracks...)
	c.Similar = append([]string(nil), c.Similar...)
	children := make([]collection.Collection, len(c.Children))
	for i, child := range c.Children {
		children[i] = cloneCollection(child)
	}
	if len(children) == 0 {
		children = nil
	}
	c.Children = children
	return c
}
