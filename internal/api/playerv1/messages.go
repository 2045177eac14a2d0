// Package playerv1 defines the player RPC messages, procedures, handlers
// and clients. Messages travel as JSON.
package playerv1

import (
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/app/view"
	"github.com/osa030/tunedeck/internal/domain/track"
)

// Notification types.
const (
	NotificationTypeInitialState    = "initial_state"
	NotificationTypeTrackChanged    = "track_changed"
	NotificationTypeStateChanged    = "state_changed"
	NotificationTypePositionChanged = "position_changed"
	NotificationTypeQueueChanged    = "queue_changed"
	NotificationTypeQueueEnded      = "queue_ended"
	NotificationTypeStopped         = "stopped"
)

// TrackInfo describes a track.
type TrackInfo struct {
	Id              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	Album           string `json:"album,omitempty"`
	DurationSeconds int32  `json:"duration_seconds"`
	ArtworkUrl      string `json:"artwork_url,omitempty"`
}

// Snapshot is the wire form of a playback snapshot.
type Snapshot struct {
	Track           *TrackInfo `json:"track,omitempty"`
	Status          string     `json:"status"`
	PositionSeconds int32      `json:"position_seconds"`
	Volume          int32      `json:"volume"`
	Shuffle         bool       `json:"shuffle"`
	Repeat          string     `json:"repeat"`
	ContextId       string     `json:"context_id,omitempty"`
	QueueIndex      int32      `json:"queue_index"`
	QueueLength     int32      `json:"queue_length"`
	Revision        uint64     `json:"revision"`
}

// Notification is a server-streamed playback update.
type Notification struct {
	Type       string       `json:"type"`
	SequenceNo uint64       `json:"sequence_no"`
	Snapshot   *Snapshot    `json:"snapshot"`
	Footer     *view.Footer `json:"footer"`
}

// NewTrackInfo converts a track.
func NewTrackInfo(t *track.Track) *TrackInfo {
	if t == nil {
		return nil
	}
	return &TrackInfo{
		Id:              t.ID,
		Title:           t.Title,
		Artist:          t.Artist,
		Album:           t.Album,
		DurationSeconds: int32(t.Duration),
		ArtworkUrl:      t.ArtworkURL,
	}
}

// NewSnapshot converts a playback snapshot.
func NewSnapshot(s playback.Snapshot) *Snapshot {
	return &Snapshot{
		Track:           NewTrackInfo(s.CurrentTrack),
		Status:          s.Status.String(),
		PositionSeconds: int32(s.Position),
		Volume:          int32(s.Volume),
		Shuffle:         s.Shuffle,
		Repeat:          s.Repeat.String(),
		ContextId:       s.ContextID,
		QueueIndex:      int32(s.QueueIndex),
		QueueLength:     int32(s.QueueLength),
		Revision:        s.Revision,
	}
}

// NewNotification builds a notification carrying the snapshot and its
// footer rendering. The sequence number is assigned on broadcast.
func NewNotification(notificationType string, s playback.Snapshot) *Notification {
	footer := view.BuildFooter(s)
	return &Notification{
		Type:     notificationType,
		Snapshot: NewSnapshot(s),
		Footer:   &footer,
	}
}

// PlayerService messages.

type GetSnapshotRequest struct{}

type GetSnapshotResponse struct {
	Snapshot *Snapshot   `json:"snapshot"`
	Footer   view.Footer `json:"footer"`
}

type PlayTrackRequest struct {
	TrackId   string `json:"track_id"`
	ContextId string `json:"context_id,omitempty"` // Collection to queue around the track
}

type PlayCollectionRequest struct {
	CollectionId string `json:"collection_id"`
}

type EnqueueRequest struct {
	TrackId string `json:"track_id"`
}

type TogglePlayPauseRequest struct{}

type SeekRequest struct {
	PositionSeconds int32 `json:"position_seconds"`
}

type SetVolumeRequest struct {
	Volume int32 `json:"volume"`
}

type ToggleMuteRequest struct{}

type ToggleShuffleRequest struct{}

type CycleRepeatRequest struct{}

type NextRequest struct{}

type PreviousRequest struct{}

type StopRequest struct{}

// TransportResponse is returned by every transport operation.
type TransportResponse struct {
	Changed  bool      `json:"changed"`
	Snapshot *Snapshot `json:"snapshot"`
}

type SubscribeRequest struct{}

// BrowseService messages.

type GetSidebarRequest struct {
	Route string `json:"route"`
}

type GetSidebarResponse struct {
	Sidebar view.Sidebar `json:"sidebar"`
}

type GetHomeRequest struct{}

type GetHomeResponse struct {
	Page view.HomePage `json:"page"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Page view.SearchPage `json:"page"`
}

type GetLibraryRequest struct{}

type GetLibraryResponse struct {
	Page view.LibraryPage `json:"page"`
}

type GetArtistRequest struct {
	ArtistId string `json:"artist_id"`
}

type GetArtistResponse struct {
	Page view.ArtistPage `json:"page"`
}

type GetCollectionRequest struct {
	CollectionId string `json:"collection_id"`
}

type GetCollectionResponse struct {
	Page view.CollectionPage `json:"page"`
}

type FollowRequest struct {
	ArtistId string `json:"artist_id"`
	Follow   bool   `json:"follow"` // false unfollows
}

type FollowResponse struct {
	Following bool `json:"following"`
}

type SaveRequest struct {
	Id   string `json:"id"`
	Save bool   `json:"save"` // false removes
}

type SaveResponse struct {
	Saved bool `json:"saved"`
}
