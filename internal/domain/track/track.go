// Package track provides the Track domain entity.
package track

import "github.com/cockroachdb/errors"

// Track represents a single playable item owned by a catalog.
// Values are never mutated after loading; the player holds references.
type Track struct {
	ID         string // Opaque catalog identifier
	Title      string // Track title
	Artist     string // Artist display name
	Album      string // Album name (empty if none)
	Duration   int    // Duration in seconds
	ArtworkURL string // Artwork URI (empty if none)
}

// Validate checks the fields required for playback.
func (t *Track) Validate() error {
	if t.ID == "" {
		return errors.New("track id is required")
	}
	if t.Duration < 0 {
		return errors.Newf("track %s has negative duration %d", t.ID, t.Duration)
	}
	return nil
}

// HasArtwork reports whether the track carries an artwork reference.
func (t *Track) HasArtwork() bool {
	return t.ArtworkURL != ""
}

// HasAlbum reports whether the track belongs to a named album.
func (t *Track) HasAlbum() bool {
	return t.Album != ""
}
