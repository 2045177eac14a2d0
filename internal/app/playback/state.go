// Package playback provides the playback state store, its transport
// controller and the play queue.
package playback

import "github.com/cockroachdb/errors"

// Status represents the transport status.
type Status int

const (
	StatusPaused  Status = iota // Playback halted (also the state with no track)
	StatusPlaying               // Position is advancing
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPaused:
		return "paused"
	case StatusPlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// RepeatMode represents what happens at the end of a track or queue.
type RepeatMode int

const (
	RepeatOff     RepeatMode = iota // Stop at the end of the queue
	RepeatContext                   // Loop the containing collection
	RepeatTrack                     // Loop the current track
)

// String returns the string representation of the repeat mode.
func (r RepeatMode) String() string {
	switch r {
	case RepeatOff:
		return "off"
	case RepeatContext:
		return "context"
	case RepeatTrack:
		return "track"
	default:
		return "unknown"
	}
}

// next returns the mode that follows r in the off → context → track cycle.
func (r RepeatMode) next() RepeatMode {
	switch r {
	case RepeatOff:
		return RepeatContext
	case RepeatContext:
		return RepeatTrack
	default:
		return RepeatOff
	}
}

// ParseRepeatMode parses the string form of a repeat mode.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch s {
	case "off", "":
		return RepeatOff, nil
	case "context":
		return RepeatContext, nil
	case "track":
		return RepeatTrack, nil
	default:
		return RepeatOff, errors.Newf("unknown repeat mode %q", s)
	}
}

// MuteRestore selects the volume restored when unmuting from zero.
type MuteRestore int

const (
	MuteRestoreFixed MuteRestore = iota // Restore the configured default volume
	MuteRestoreLast                     // Restore the last non-zero volume
)

// String returns the string representation of the policy.
func (m MuteRestore) String() string {
	switch m {
	case MuteRestoreFixed:
		return "fixed"
	case MuteRestoreLast:
		return "last"
	default:
		return "unknown"
	}
}

// ParseMuteRestore parses the string form of a mute restore policy.
func ParseMuteRestore(s string) (MuteRestore, error) {
	switch s {
	case "fixed", "":
		return MuteRestoreFixed, nil
	case "last":
		return MuteRestoreLast, nil
	default:
		return MuteRestoreFixed, errors.Newf("unknown mute restore policy %q", s)
	}
}
