package playerv1

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PlayerServiceName is the fully-qualified name of the PlayerService service.
const PlayerServiceName = "tunedeck.player.v1.PlayerService"

// These constants are the fully-qualified names of the RPCs defined in
// PlayerService, as they appear in the request path.
const (
	PlayerServiceGetSnapshotProcedure     = "/tunedeck.player.v1.PlayerService/GetSnapshot"
	PlayerServicePlayTrackProcedure       = "/tunedeck.player.v1.PlayerService/PlayTrack"
	PlayerServicePlayCollectionProcedure  = "/tunedeck.player.v1.PlayerService/PlayCollection"
	PlayerServiceEnqueueProcedure         = "/tunedeck.player.v1.PlayerService/Enqueue"
	PlayerServiceTogglePlayPauseProcedure = "/tunedeck.player.v1.PlayerService/TogglePlayPause"
	PlayerServiceSeekProcedure            = "/tunedeck.player.v1.PlayerService/Seek"
	PlayerServiceSetVolumeProcedure       = "/tunedeck.player.v1.PlayerService/SetVolume"
	PlayerServiceToggleMuteProcedure      = "/tunedeck.player.v1.PlayerService/ToggleMute"
	PlayerServiceToggleShuffleProcedure   = "/tunedeck.player.v1.PlayerService/ToggleShuffle"
	PlayerServiceCycleRepeatProcedure     = "/tunedeck.player.v1.PlayerService/CycleRepeat"
	PlayerServiceNextProcedure            = "/tunedeck.player.v1.PlayerService/Next"
	PlayerServicePreviousProcedure        = "/tunedeck.player.v1.PlayerService/Previous"
	PlayerServiceStopProcedure            = "/tunedeck.player.v1.PlayerService/Stop"
	PlayerServiceSubscribeProcedure       = "/tunedeck.player.v1.PlayerService/Subscribe"
)

// IsPlayerMutation reports whether procedure changes playback state.
func IsPlayerMutation(procedure string) bool {
	if !strings.HasPrefix(procedure, "/"+PlayerServiceName+"/") {
		return false
	}
	return procedure != PlayerServiceGetSnapshotProcedure && procedure != PlayerServiceSubscribeProcedure
}

// PlayerServiceHandler is an implementation of the PlayerService service.
type PlayerServiceHandler interface {
	GetSnapshot(context.Context, *connect.Request[GetSnapshotRequest]) (*connect.Response[GetSnapshotResponse], error)
	PlayTrack(context.Context, *connect.Request[PlayTrackRequest]) (*connect.Response[TransportResponse], error)
	PlayCollection(context.Context, *connect.Request[PlayCollectionRequest]) (*connect.Response[TransportResponse], error)
	Enqueue(context.Context, *connect.Request[EnqueueRequest]) (*connect.Response[TransportResponse], error)
	TogglePlayPause(context.Context, *connect.Request[TogglePlayPauseRequest]) (*connect.Response[TransportResponse], error)
	Seek(context.Context, *connect.Request[SeekRequest]) (*connect.Response[TransportResponse], error)
	SetVolume(context.Context, *connect.Request[SetVolumeRequest]) (*connect.Response[TransportResponse], error)
	ToggleMute(context.Context, *connect.Request[ToggleMuteRequest]) (*connect.Response[TransportResponse], error)
	ToggleShuffle(context.Context, *connect.Request[ToggleShuffleRequest]) (*connect.Response[TransportResponse], error)
	CycleRepeat(context.Context, *connect.Request[CycleRepeatRequest]) (*connect.Response[TransportResponse], error)
	Next(context.Context, *connect.Request[NextRequest]) (*connect.Response[TransportResponse], error)
	Previous(context.Context, *connect.Request[PreviousRequest]) (*connect.Response[TransportResponse], error)
	Stop(context.Context, *connect.Request[StopRequest]) (*connect.Response[TransportResponse], error)
	Subscribe(context.Context, *connect.Request[SubscribeRequest], *connect.ServerStream[Notification]) error
}

// NewPlayerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewPlayerServiceHandler(svc PlayerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	handlers := map[string]http.Handler{
		PlayerServiceGetSnapshotProcedure:     connect.NewUnaryHandler(PlayerServiceGetSnapshotProcedure, svc.GetSnapshot, opts...),
		PlayerServicePlayTrackProcedure:       connect.NewUnaryHandler(PlayerServicePlayTrackProcedure, svc.PlayTrack, opts...),
		PlayerServicePlayCollectionProcedure:  connect.NewUnaryHandler(PlayerServicePlayCollectionProcedure, svc.PlayCollection, opts...),
		PlayerServiceEnqueueProcedure:         connect.NewUnaryHandler(PlayerServiceEnqueueProcedure, svc.Enqueue, opts...),
		PlayerServiceTogglePlayPauseProcedure: connect.NewUnaryHandler(PlayerServiceTogglePlayPauseProcedure, svc.TogglePlayPause, opts...),
		PlayerServiceSeekProcedure:            connect.NewUnaryHandler(PlayerServiceSeekProcedure, svc.Seek, opts...),
		PlayerServiceSetVolumeProcedure:       connect.NewUnaryHandler(PlayerServiceSetVolumeProcedure, svc.SetVolume, opts...),
		PlayerServiceToggleMuteProcedure:      connect.NewUnaryHandler(PlayerServiceToggleMuteProcedure, svc.ToggleMute, opts...),
		PlayerServiceToggleShuffleProcedure:   connect.NewUnaryHandler(PlayerServiceToggleShuffleProcedure, svc.ToggleShuffle, opts...),
		PlayerServiceCycleRepeatProcedure:     connect.NewUnaryHandler(PlayerServiceCycleRepeatProcedure, svc.CycleRepeat, opts...),
		PlayerServiceNextProcedure:            connect.NewUnaryHandler(PlayerServiceNextProcedure, svc.Next, opts...),
		PlayerServicePreviousProcedure:        connect.NewUnaryHandler(PlayerServicePreviousProcedure, svc.Previous, opts...),
		PlayerServiceStopProcedure:            connect.NewUnaryHandler(PlayerServiceStopProcedure, svc.Stop, opts...),
		PlayerServiceSubscribeProcedure:       connect.NewServerStreamHandler(PlayerServiceSubscribeProcedure, svc.Subscribe, opts...),
	}
	return "/" + PlayerServiceName + "/", route(handlers)
}

// PlayerServiceClient is a client for the PlayerService service.
type PlayerServiceClient struct {
	getSnapshot     *connect.Client[GetSnapshotRequest, GetSnapshotResponse]
	playTrack       *connect.Client[PlayTrackRequest, TransportResponse]
	playCollection  *connect.Client[PlayCollectionRequest, TransportResponse]
	enqueue         *connect.Client[EnqueueRequest, TransportResponse]
	togglePlayPause *connect.Client[TogglePlayPauseRequest, TransportResponse]
	seek            *connect.Client[SeekRequest, TransportResponse]
	setVolume       *connect.Client[SetVolumeRequest, TransportResponse]
	toggleMute      *connect.Client[ToggleMuteRequest, TransportResponse]
	toggleShuffle   *connect.Client[ToggleShuffleRequest, TransportResponse]
	cycleRepeat     *connect.Client[CycleRepeatRequest, TransportResponse]
	next            *connect.Client[NextRequest, TransportResponse]
	previous        *connect.Client[PreviousRequest, TransportResponse]
	stop            *connect.Client[StopRequest, TransportResponse]
	subscribe       *connect.Client[SubscribeRequest, Notification]
}

// NewPlayerServiceClient constructs a client for the PlayerService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewPlayerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlayerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &PlayerServiceClient{
		getSnapshot:     connect.NewClient[GetSnapshotRequest, GetSnapshotResponse](httpClient, baseURL+PlayerServiceGetSnapshotProcedure, opts...),
		playTrack:       connect.NewClient[PlayTrackRequest, TransportResponse](httpClient, baseURL+PlayerServicePlayTrackProcedure, opts...),
		playCollection:  connect.NewClient[PlayCollectionRequest, TransportResponse](httpClient, baseURL+PlayerServicePlayCollectionProcedure, opts...),
		enqueue:         connect.NewClient[EnqueueRequest, TransportResponse](httpClient, baseURL+PlayerServiceEnqueueProcedure, opts...),
		togglePlayPause: connect.NewClient[TogglePlayPauseRequest, TransportResponse](httpClient, baseURL+PlayerServiceTogglePlayPauseProcedure, opts...),
		seek:            connect.NewClient[SeekRequest, TransportResponse](httpClient, baseURL+PlayerServiceSeekProcedure, opts...),
		setVolume:       connect.NewClient[SetVolumeRequest, TransportResponse](httpClient, baseURL+PlayerServiceSetVolumeProcedure, opts...),
		toggleMute:      connect.NewClient[ToggleMuteRequest, TransportResponse](httpClient, baseURL+PlayerServiceToggleMuteProcedure, opts...),
		toggleShuffle:   connect.NewClient[ToggleShuffleRequest, TransportResponse](httpClient, baseURL+PlayerServiceToggleShuffleProcedure, opts...),
		cycleRepeat:     connect.NewClient[CycleRepeatRequest, TransportResponse](httpClient, baseURL+PlayerServiceCycleRepeatProcedure, opts...),
		next:            connect.NewClient[NextRequest, TransportResponse](httpClient, baseURL+PlayerServiceNextProcedure, opts...),
		previous:        connect.NewClient[PreviousRequest, TransportResponse](httpClient, baseURL+PlayerServicePreviousProcedure, opts...),
		stop:            connect.NewClient[StopRequest, TransportResponse](httpClient, baseURL+PlayerServiceStopProcedure, opts...),
		subscribe:       connect.NewClient[SubscribeRequest, Notification](httpClient, baseURL+PlayerServiceSubscribeProcedure, opts...),
	}
}

// GetSnapshot calls tunedeck.player.v1.PlayerService.GetSnapshot.
func (c *PlayerServiceClient) GetSnapshot(ctx context.Context, req *connect.Request[GetSnapshotRequest]) (*connect.Response[GetSnapshotResponse], error) {
	return c.getSnapshot.CallUnary(ctx, req)
}

// PlayTrack calls tunedeck.player.v1.PlayerService.PlayTrack.
func (c *PlayerServiceClient) PlayTrack(ctx context.Context, req *connect.Request[PlayTrackRequest]) (*connect.Response[TransportResponse], error) {
	return c.playTrack.CallUnary(ctx, req)
}

// PlayCollection calls tunedeck.player.v1.PlayerService.PlayCollection.
func (c *PlayerServiceClient) PlayCollection(ctx context.Context, req *connect.Request[PlayCollectionRequest]) (*connect.Response[TransportResponse], error) {
	return c.playCollection.CallUnary(ctx, req)
}

// Enqueue calls tunedeck.player.v1.PlayerService.Enqueue.
func (c *PlayerServiceClient) Enqueue(ctx context.Context, req *connect.Request[EnqueueRequest]) (*connect.Response[TransportResponse], error) {
	return c.enqueue.CallUnary(ctx, req)
}

// TogglePlayPause calls tunedeck.player.v1.PlayerService.TogglePlayPause.
func (c *PlayerServiceClient) TogglePlayPause(ctx context.Context, req *connect.Request[TogglePlayPauseRequest]) (*connect.Response[TransportResponse], error) {
	return c.togglePlayPause.CallUnary(ctx, req)
}

// Seek calls tunedeck.player.v1.PlayerService.Seek.
func (c *PlayerServiceClient) Seek(ctx context.Context, req *connect.Request[SeekRequest]) (*connect.Response[TransportResponse], error) {
	return c.seek.CallUnary(ctx, req)
}

// SetVolume calls tunedeck.player.v1.PlayerService.SetVolume.
func (c *PlayerServiceClient) SetVolume(ctx context.Context, req *connect.Request[SetVolumeRequest]) (*connect.Response[TransportResponse], error) {
	return c.setVolume.CallUnary(ctx, req)
}

// ToggleMute calls tunedeck.player.v1.PlayerService.ToggleMute.
func (c *PlayerServiceClient) ToggleMute(ctx context.Context, req *connect.Request[ToggleMuteRequest]) (*connect.Response[TransportResponse], error) {
	return c.toggleMute.CallUnary(ctx, req)
}

// ToggleShuffle calls tunedeck.player.v1.PlayerService.ToggleShuffle.
func (c *PlayerServiceClient) ToggleShuffle(ctx context.Context, req *connect.Request[ToggleShuffleRequest]) (*connect.Response[TransportResponse], error) {
	return c.toggleShuffle.CallUnary(ctx, req)
}

// CycleRepeat calls tunedeck.player.v1.PlayerService.CycleRepeat.
func (c *PlayerServiceClient) CycleRepeat(ctx context.Context, req *connect.Request[CycleRepeatRequest]) (*connect.Response[TransportResponse], error) {
	return c.cycleRepeat.CallUnary(ctx, req)
}

// Next calls tunedeck.player.v1.PlayerService.Next.
func (c *PlayerServiceClient) Next(ctx context.Context, req *connect.Request[NextRequest]) (*connect.Response[TransportResponse], error) {
	return c.next.CallUnary(ctx, req)
}

// Previous calls tunedeck.player.v1.PlayerService.Previous.
func (c *PlayerServiceClient) Previous(ctx context.Context, req *connect.Request[PreviousRequest]) (*connect.Response[TransportResponse], error) {
	return c.previous.CallUnary(ctx, req)
}

// Stop calls tunedeck.player.v1.PlayerService.Stop.
func (c *PlayerServiceClient) Stop(ctx context.Context, req *connect.Request[StopRequest]) (*connect.Response[TransportResponse], error) {
	return c.stop.CallUnary(ctx, req)
}

// Subscribe calls tunedeck.player.v1.PlayerService.Subscribe.
func (c *PlayerServiceClient) Subscribe(ctx context.Context, req *connect.Request[SubscribeRequest]) (*connect.ServerStreamForClient[Notification], error) {
	return c.subscribe.CallServerStream(ctx, req)
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
