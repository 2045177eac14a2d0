// Package collection provides the Collection domain entity (playlists,
// albums and artists).
package collection

import (
	"github.com/osa030/tunedeck/internal/domain/track"
)

// Kind identifies what a collection represents.
type Kind string

const (
	KindPlaylist Kind = "playlist"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPlaylist, KindAlbum, KindArtist:
		return true
	default:
		return false
	}
}

// Collection is a catalog record grouping tracks.
// For artists, Tracks holds the top tracks and Children the albums.
type Collection struct {
	ID          string        // Opaque catalog identifier
	Kind        Kind          // playlist, album or artist
	Title       string        // Display title (artist name for artists)
	Description string        // Short description or subtitle
	ArtworkURL  string        // Cover or portrait URI
	Creator     string        // Playlist owner or album artist
	Tracks      []track.Track // Ordered tracks
	Children    []Collection  // Albums of an artist

	// Artist-only details, filled by enrichment when available.
	Bio       string
	Listeners int
	Similar   []string
}

// TrackIDs returns all track IDs in order.
func (c *Collection) TrackIDs() []string {
	ids := make([]string, len(c.Tracks))
	for i, t := range c.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// TotalDuration returns the summed track duration in seconds.
func (c *Collection) TotalDuration() int {
	total := 0
	for _, t := range c.Tracks {
		total += t.Duration
	}
	return total
}

// IndexOf returns the position of the track with the given ID, or -1.
func (c *Collection) IndexOf(trackID string) int {
	for i, t := range c.Tracks {
		if t.ID == trackID {
			return i
		}
	}
	return -1
}

// TrackPointers returns pointers into the collection's track slice so the
// player can reference the catalog-owned values without copying them.
func (c *Collection) TrackPointers() []*track.Track {
	ptrs := make([]*track.Track, len(c.Tracks))
	for i := range c.Tracks {
		ptrs[i] = &c.Tracks[i]
	}
	return ptrs
}
