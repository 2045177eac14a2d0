package view

import (
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/app/timefmt"
)

// Icon names used by the footer.
const (
	IconPlay       = "play"
	IconPause      = "pause"
	IconRepeat     = "repeat"
	IconRepeatOne  = "repeat-1"
	IconVolume     = "volume"
	IconVolumeMute = "volume-x"
)

// NoTrackText is shown in place of the track info when nothing is loaded.
const NoTrackText = "No track playing"

// Footer is the persistent playback control bar.
type Footer struct {
	HasTrack   bool   `json:"has_track"`
	Title      string `json:"title"` // NoTrackText when HasTrack is false
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artwork_url"`

	Elapsed  string  `json:"elapsed"`  // M:SS
	Total    string  `json:"total"`    // M:SS
	Position int     `json:"position"` // Seconds
	Duration int     `json:"duration"` // Seconds
	Percent  float64 `json:"percent"`  // 0-100

	ControlsEnabled bool   `json:"controls_enabled"` // Play/pause, previous, next and seek
	PlayPauseIcon   string `json:"play_pause_icon"`

	Shuffle    bool   `json:"shuffle"`
	Repeat     string `json:"repeat"` // off, context or track
	RepeatOn   bool   `json:"repeat_on"`
	RepeatIcon string `json:"repeat_icon"`

	Volume     int    `json:"volume"`
	Muted      bool   `json:"muted"`
	VolumeIcon string `json:"volume_icon"`
}

// BuildFooter renders a snapshot.
func BuildFooter(snap playback.Snapshot) Footer {
	f := Footer{
		HasTrack:        snap.HasTrack(),
		Title:           NoTrackText,
		Position:        snap.Position,
		Duration:        snap.Duration(),
		ControlsEnabled: snap.HasTrack(),
		PlayPauseIcon:   IconPlay,
		Shuffle:         snap.Shuffle,
		Repeat:          snap.Repeat.String(),
		RepeatOn:        snap.Repeat != playback.RepeatOff,
		RepeatIcon:      IconRepeat,
		Volume:          snap.Volume,
		Muted:           snap.Muted(),
		VolumeIcon:      IconVolume,
	}

	if t := snap.CurrentTrack; t != nil {
		f.Title = t.Title
		f.Artist = t.Artist
		f.ArtworkURL = t.ArtworkURL
	}
	if snap.IsPlaying() {
		f.PlayPauseIcon = IconPause
	}
	if snap.Repeat == playback.RepeatTrack {
		f.RepeatIcon = IconRepeatOne
	}
	if f.Muted {
		f.VolumeIcon = IconVolumeMute
	}

	f.Elapsed = timefmt.Format(f.Position)
	f.Total = timefmt.Format(f.Duration)
	f.Percent = timefmt.Percent(f.Position, f.Duration)
	return f
}
