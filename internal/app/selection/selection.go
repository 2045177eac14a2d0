// Package selection derives per-item highlight flags from a playback
// snapshot.
package selection

import (
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

// Flag is the highlight state of one list item.
type Flag struct {
	Active     bool // The item is the loaded track (or the playing collection)
	PlayingNow bool // Active and the transport is playing
}

// Flags returns the flags of the track with the given ID.
func Flags(snap playback.Snapshot, trackID string) Flag {
	if snap.CurrentTrack == nil || trackID == "" {
		return Flag{}
	}
	active := snap.CurrentTrack.ID == trackID
	return Flag{
		Active:     active,
		PlayingNow: active && snap.Status == playback.StatusPlaying,
	}
}

// TileFlags returns the flags of a collection tile. A tile is active while
// the queue was loaded from it.
func TileFlags(snap playback.Snapshot, collectionID string) Flag {
	if snap.CurrentTrack == nil || collectionID == "" {
		return Flag{}
	}
	active := snap.ContextID == collectionID
	return Flag{
		Active:     active,
		PlayingNow: active && snap.Status == playback.StatusPlaying,
	}
}

// ForTracks returns one flag per track, in order.
func ForTracks(snap playback.Snapshot, tracks []track.Track) []Flag {
	flags := make([]Flag, len(tracks))
	for i := range tracks {
		flags[i] = Flags(snap, tracks[i].ID)
	}
	return flags
}

// ForTiles returns one flag per collection, in order.
func ForTiles(snap playback.Snapshot, collections []collection.Collection) []Flag {
	flags := make([]Flag, len(collections))
	for i := range collections {
		flags[i] = TileFlags(snap, collections[i].ID)
	}
	return flags
}
