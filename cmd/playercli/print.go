package main

import (
	"fmt"
	"io"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/view"
)

func printFooter(w io.Writer, f view.Footer) {
	fmt.Fprintf(w, "[%s] %s", f.PlayPauseIcon, f.Title)
	if f.Artist != "" {
		fmt.Fprintf(w, " - %s", f.Artist)
	}
	fmt.Fprintln(w)
	if f.HasTrack {
		fmt.Fprintf(w, "  %s / %s (%.0f%%)\n", f.Elapsed, f.Total, f.Percent)
	}
	fmt.Fprintf(w, "  shuffle=%v repeat=%s [%s] volume=%d [%s]\n",
		f.Shuffle, f.Repeat, f.RepeatIcon, f.Volume, f.VolumeIcon)
}

func printSnapshot(w io.Writer, s *playerv1.Snapshot) {
	if s == nil {
		return
	}
	fmt.Fprintf(w, "Status: %s (revision %d)\n", s.Status, s.Revision)
	if s.Track != nil {
		fmt.Fprintf(w, "  Track: %s - %s [%s]\n", s.Track.Title, s.Track.Artist, s.Track.Id)
		fmt.Fprintf(w, "  Position: %ds / %ds\n", s.PositionSeconds, s.Track.DurationSeconds)
		fmt.Fprintf(w, "  Queue: %d of %d", s.QueueIndex+1, s.QueueLength)
		if s.ContextId != "" {
			fmt.Fprintf(w, " from %s", s.ContextId)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  Volume: %d  Shuffle: %v  Repeat: %s\n", s.Volume, s.Shuffle, s.Repeat)
}

func printNotification(w io.Writer, n *playerv1.Notification) {
	fmt.Fprintf(w, "\n[Sequence: %d] === %s ===\n", n.SequenceNo, n.Type)
	if n.Footer != nil {
		printFooter(w, *n.Footer)
	}
}

func printRows(w io.Writer, rows []view.Row) {
	for _, r := range rows {
		fmt.Fprintf(w, "  %s%2d. %-32s %-24s %5s  %s\n", marker(r.Active, r.PlayingNow), r.Number, r.Title, r.Artist, r.Duration, r.ID)
	}
}

func printTiles(w io.Writer, tiles []view.Tile) {
	for _, t := range tiles {
		fmt.Fprintf(w, "  %s%-32s %-32s %s\n", marker(t.Active, t.PlayingNow), t.Title, t.Subtitle, t.ID)
	}
}

// marker flags the current item; playing items get a stronger mark.
func marker(active, playing bool) string {
	switch {
	case playing:
		return "> "
	case active:
		return "* "
	default:
		return "  "
	}
}

func notFound(w io.Writer, state view.State) bool {
	if state == view.StateNotFound {
		fmt.Fprintln(w, "Not found")
		return true
	}
	return false
}

func printHome(w io.Writer, p view.HomePage) {
	for _, s := range p.Sections {
		fmt.Fprintf(w, "\n%s\n", s.Title)
		printTiles(w, s.Tiles)
		printRows(w, s.Rows)
	}
}

func printSearch(w io.Writer, p view.SearchPage) {
	fmt.Fprintf(w, "Results for %q:", p.Query)
	for _, tab := range p.Tabs {
		fmt.Fprintf(w, " %s(%d)", tab.Name, tab.Count)
	}
	fmt.Fprintln(w)
	printSection(w, "Tracks", func() { printRows(w, p.Tracks) }, len(p.Tracks))
	printSection(w, "Albums", func() { printTiles(w, p.Albums) }, len(p.Albums))
	printSection(w, "Artists", func() { printTiles(w, p.Artists) }, len(p.Artists))
	printSection(w, "Playlists", func() { printTiles(w, p.Playlists) }, len(p.Playlists))
}

func printLibrary(w io.Writer, p view.LibraryPage) {
	printSection(w, "Playlists", func() { printTiles(w, p.Playlists) }, len(p.Playlists))
	printSection(w, "Artists", func() { printTiles(w, p.Artists) }, len(p.Artists))
	printSection(w, "Albums", func() { printTiles(w, p.Albums) }, len(p.Albums))
	printSection(w, "Liked Tracks", func() { printRows(w, p.Tracks) }, len(p.Tracks))
}

func printArtist(w io.Writer, p view.ArtistPage) {
	if notFound(w, p.State) {
		return
	}
	fmt.Fprintf(w, "%s (%d listeners) following=%v\n", p.Name, p.Listeners, p.Following)
	if p.Bio != "" {
		fmt.Fprintf(w, "  %s\n", p.Bio)
	}
	printSection(w, "Popular", func() { printRows(w, p.TopTracks) }, len(p.TopTracks))
	printSection(w, "Albums", func() { printTiles(w, p.Albums) }, len(p.Albums))
	if len(p.Similar) > 0 {
		fmt.Fprintf(w, "\nFans also like: %v\n", p.Similar)
	}
}

func printCollection(w io.Writer, p view.CollectionPage) {
	if notFound(w, p.State) {
		return
	}
	fmt.Fprintf(w, "%s: %s saved=%v\n", p.Kind, p.Title, p.Saved)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	fmt.Fprintf(w, "  %s, %d tracks, %s\n", p.Creator, p.TrackCount, p.TotalDuration)
	printRows(w, p.Rows)
}

func printSection(w io.Writer, title string, body func(), n int) {
	if n == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	body()
}
