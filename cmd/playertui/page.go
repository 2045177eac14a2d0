package main

import (
	"fmt"

	"github.com/osa030/tunedeck/internal/app/view"
	"github.com/osa030/tunedeck/internal/domain/collection"
)

type entryKind int

const (
	entryHeader entryKind = iota
	entryText
	entryRow
	entryTile
)

// entry is one line of a page. Rows and tiles are selectable.
type entry struct {
	kind entryKind
	text string
	row  view.Row
	tile view.Tile
}

func (e entry) selectable() bool {
	return e.kind == entryRow || e.kind == entryTile
}

// page is a page model flattened into lines.
type page struct {
	title   string
	state   view.State
	entries []entry

	artistID     string // Set on artist pages
	following    bool
	collectionID string // Set on playlist and album pages
	saved        bool
}

func (p *page) header(title string) {
	p.entries = append(p.entries, entry{kind: entryHeader, text: title})
}

func (p *page) text(s string) {
	p.entries = append(p.entries, entry{kind: entryText, text: s})
}

func (p *page) rows(title string, rows []view.Row) {
	if len(rows) == 0 {
		return
	}
	if title != "" {
		p.header(title)
	}
	for _, r := range rows {
		p.entries = append(p.entries, entry{kind: entryRow, row: r})
	}
}

func (p *page) tiles(title string, tiles []view.Tile) {
	if len(tiles) == 0 {
		return
	}
	p.header(title)
	for _, t := range tiles {
		p.entries = append(p.entries, entry{kind: entryTile, tile: t})
	}
}

func homePage(hp view.HomePage) page {
	p := page{title: "Home", state: hp.State}
	for _, s := range hp.Sections {
		p.tiles(s.Title, s.Tiles)
		p.rows(s.Title, s.Rows)
	}
	return p
}

func searchPage(sp view.SearchPage) page {
	p := page{title: "Search", state: sp.State}
	if sp.Query == "" {
		p.text("Press / to search")
		return p
	}
	summary := fmt.Sprintf("Results for %q:", sp.Query)
	for _, tab := range sp.Tabs {
		summary += fmt.Sprintf(" %s %d", tab.Name, tab.Count)
	}
	p.text(summary)
	p.rows("Tracks", sp.Tracks)
	p.tiles("Albums", sp.Albums)
	p.tiles("Artists", sp.Artists)
	p.tiles("Playlists", sp.Playlists)
	return p
}

func libraryPage(lp view.LibraryPage) page {
	p := page{title: "Your Library", state: lp.State}
	p.tiles("Playlists", lp.Playlists)
	p.tiles("Artists", lp.Artists)
	p.tiles("Albums", lp.Albums)
	p.rows("Liked Tracks", lp.Tracks)
	if len(p.entries) == 0 {
		p.text("Nothing saved yet")
	}
	return p
}

func artistPage(ap view.ArtistPage) page {
	p := page{title: ap.Name, state: ap.State, artistID: ap.ID, following: ap.Following}
	if ap.State == view.StateNotFound {
		p.title = "Artist"
		p.text("Artist not found")
		return p
	}
	p.text(fmt.Sprintf("%d monthly listeners", ap.Listeners))
	if ap.Bio != "" {
		p.text(ap.Bio)
	}
	p.rows("Popular", ap.TopTracks)
	p.tiles("Albums", ap.Albums)
	if len(ap.Similar) > 0 {
		p.header("Fans also like")
		for _, name := range ap.Similar {
			p.text(name)
		}
	}
	return p
}

func collectionPage(cp view.CollectionPage) page {
	p := page{title: cp.Title, state: cp.State, collectionID: cp.ID, saved: cp.Saved}
	if cp.State == view.StateNotFound {
		p.title = "Not found"
		p.text("Playlist or album not found")
		return p
	}
	kind := "Playlist"
	if cp.Kind == collection.KindAlbum {
		kind = "Album"
	}
	p.text(fmt.Sprintf("%s by %s, %d tracks, %s", kind, cp.Creator, cp.TrackCount, cp.TotalDuration))
	if cp.Description != "" {
		p.text(cp.Description)
	}
	p.rows("", cp.Rows)
	return p
}

// nextSelectable returns the next selectable index from i in direction dir,
// or i when there is none.
func (p page) nextSelectable(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(p.entries); j += dir {
		if p.entries[j].selectable() {
			return j
		}
	}
	return i
}

// firstSelectable returns the first selectable index, or -1.
func (p page) firstSelectable() int {
	for i, e := range p.entries {
		if e.selectable() {
			return i
		}
	}
	return -1
}
