package connect

import (
	"context"
	"sync"

	"connectrpc.com/connect"
	zlog "github.com/rs/zerolog/log"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/session"
	"github.com/osa030/tunedeck/internal/app/view"
)

// PlayerService implements the PlayerService RPC.
type PlayerService struct {
	session *session.Manager
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(session *session.Manager) *PlayerService {
	return &PlayerService{session: session}
}

// Ensure PlayerService implements the interface.
var _ playerv1.PlayerServiceHandler = (*PlayerService)(nil)

// GetSnapshot returns the current playback snapshot and its footer.
func (s *PlayerService) GetSnapshot(
	ctx context.Context,
	req *connect.Request[playerv1.GetSnapshotRequest],
) (*connect.Response[playerv1.GetSnapshotResponse], error) {
	snap := s.session.Snapshot()
	return connect.NewResponse(&playerv1.GetSnapshotResponse{
		Snapshot: playerv1.NewSnapshot(snap),
		Footer:   view.BuildFooter(snap),
	}), nil
}

// PlayTrack handles track selection.
func (s *PlayerService) PlayTrack(
	ctx context.Context,
	req *connect.Request[playerv1.PlayTrackRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	changed, err := s.session.PlayTrack(ctx, req.Msg.TrackId, req.Msg.ContextId)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.transportResponse(changed), nil
}

// PlayCollection handles collection playback.
func (s *PlayerService) PlayCollection(
	ctx context.Context,
	req *connect.Request[playerv1.PlayCollectionRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	changed, err := s.session.PlayCollection(ctx, req.Msg.CollectionId)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.transportResponse(changed), nil
}

// Enqueue appends a track to the queue.
func (s *PlayerService) Enqueue(
	ctx context.Context,
	req *connect.Request[playerv1.EnqueueRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	changed, err := s.session.Enqueue(ctx, req.Msg.TrackId)
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.transportResponse(changed), nil
}

// TogglePlayPause flips the play status.
func (s *PlayerService) TogglePlayPause(
	ctx context.Context,
	req *connect.Request[playerv1.TogglePlayPauseRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().TogglePlayPause()), nil
}

// Seek moves the position.
func (s *PlayerService) Seek(
	ctx context.Context,
	req *connect.Request[playerv1.SeekRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().Seek(int(req.Msg.PositionSeconds))), nil
}

// SetVolume sets the volume.
func (s *PlayerService) SetVolume(
	ctx context.Context,
	req *connect.Request[playerv1.SetVolumeRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().SetVolume(int(req.Msg.Volume))), nil
}

// ToggleMute mutes or unmutes.
func (s *PlayerService) ToggleMute(
	ctx context.Context,
	req *connect.Request[playerv1.ToggleMuteRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().ToggleMute()), nil
}

// ToggleShuffle flips shuffle.
func (s *PlayerService) ToggleShuffle(
	ctx context.Context,
	req *connect.Request[playerv1.ToggleShuffleRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().ToggleShuffle()), nil
}

// CycleRepeat advances the repeat mode.
func (s *PlayerService) CycleRepeat(
	ctx context.Context,
	req *connect.Request[playerv1.CycleRepeatRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().CycleRepeat()), nil
}

// Next skips forward.
func (s *PlayerService) Next(
	ctx context.Context,
	req *connect.Request[playerv1.NextRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().Next()), nil
}

// Previous skips back.
func (s *PlayerService) Previous(
	ctx context.Context,
	req *connect.Request[playerv1.PreviousRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().Previous()), nil
}

// Stop unloads the queue.
func (s *PlayerService) Stop(
	ctx context.Context,
	req *connect.Request[playerv1.StopRequest],
) (*connect.Response[playerv1.TransportResponse], error) {
	return s.transportResponse(s.session.Controller().Stop()), nil
}

// Subscribe streams the current snapshot followed by every change.
func (s *PlayerService) Subscribe(
	ctx context.Context,
	req *connect.Request[playerv1.SubscribeRequest],
	stream *connect.ServerStream[playerv1.Notification],
) error {
	adapter := &notificationStreamAdapter{send: stream.Send}
	subscriptionID, err := s.attach(adapter)
	if err != nil {
		return err
	}
	defer s.session.Notifications().Unsubscribe(subscriptionID)
	zlog.Debug().Msgf("subscriber attached: id=%s", subscriptionID)

	select {
	case <-ctx.Done():
	case <-s.session.Done():
	}
	return nil
}

func (s *PlayerService) transportResponse(changed bool) *connect.Response[playerv1.TransportResponse] {
	return connect.NewResponse(&playerv1.TransportResponse{
		Changed:  changed,
		Snapshot: playerv1.NewSnapshot(s.session.Snapshot()),
	})
}

// attach registers adapter and sends it the initial snapshot while holding
// it. Broadcasts that arrive meanwhile wait behind initial_state.
func (s *PlayerService) attach(adapter *notificationStreamAdapter) (string, error) {
	notifManager := s.session.Notifications()

	adapter.mu.Lock()
	subscriptionID := notifManager.Subscribe(adapter)
	initial := playerv1.NewNotification(playerv1.NotificationTypeInitialState, s.session.Snapshot())
	initial.SequenceNo = notifManager.NextSequenceNo()
	err := adapter.send(initial)
	adapter.mu.Unlock()

	if err != nil {
		notifManager.Unsubscribe(subscriptionID)
		return "", err
	}
	return subscriptionID, nil
}

// notificationStreamAdapter serializes sends onto a server stream.
type notificationStreamAdapter struct {
	mu   sync.Mutex
	send func(*playerv1.Notification) error
}

func (a *notificationStreamAdapter) Send(notification *playerv1.Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.send(notification)
}
