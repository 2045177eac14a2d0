// Package view builds render-ready page models from the catalog, the
// library and a playback snapshot.
package view

import (
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/app/selection"
	"github.com/osa030/tunedeck/internal/app/timefmt"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

// State is the load state of a page.
type State string

const (
	StateReady    State = "ready"
	StateNotFound State = "not_found"
)

// Row is one line of a track list.
type Row struct {
	Number     int    `json:"number"` // 1-based position in the list
	ID         string `json:"id"`     // Track ID
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Duration   string `json:"duration"` // M:SS
	ArtworkURL string `json:"artwork_url"`
	ContextID  string `json:"context_id"` // Collection to load when the row is played, empty for a single track
	Active     bool   `json:"active"`
	PlayingNow bool   `json:"playing_now"`
}

// Tile is a playlist, album or artist card.
type Tile struct {
	ID         string          `json:"id"`
	Kind       collection.Kind `json:"kind"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	ArtworkURL string          `json:"artwork_url"`
	Active     bool            `json:"active"`
	PlayingNow bool            `json:"playing_now"`
}

// Section is a titled group of tiles or rows.
type Section struct {
	Title string `json:"title"`
	Tiles []Tile `json:"tiles"`
	Rows  []Row  `json:"rows"`
}

// Rows converts tracks into numbered rows with highlight flags.
func Rows(snap playback.Snapshot, tracks []track.Track, contextID string) []Row {
	flags := selection.ForTracks(snap, tracks)
	rows := make([]Row, len(tracks))
	for i, t := range tracks {
		rows[i] = Row{
			Number:     i + 1,
			ID:         t.ID,
			Title:      t.Title,
			Artist:     t.Artist,
			Album:      t.Album,
			Duration:   timefmt.Format(t.Duration),
			ArtworkURL: t.ArtworkURL,
			ContextID:  contextID,
			Active:     flags[i].Active,
			PlayingNow: flags[i].PlayingNow,
		}
	}
	return rows
}

// Tiles converts collections into tiles with highlight flags.
func Tiles(snap playback.Snapshot, collections []collection.Collection) []Tile {
	flags := selection.ForTiles(snap, collections)
	tiles := make([]Tile, len(collections))
	for i, c := range collections {
		subtitle := c.Description
		if subtitle == "" {
			subtitle = c.Creator
		}
		tiles[i] = Tile{
			ID:         c.ID,
			Kind:       c.Kind,
			Title:      c.Title,
			Subtitle:   subtitle,
			ArtworkURL: c.ArtworkURL,
			Active:     flags[i].Active,
			PlayingNow: flags[i].PlayingNow,
		}
	}
	return tiles
}
