// Package main provides the player command-line client.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	apiconnect "github.com/osa030/tunedeck/internal/api/connect"
	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/timefmt"
)

var (
	app    = kingpin.New("tunedeck", "tunedeck player client")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	token  = app.Flag("token", "Player token (or set PLAYER_TOKEN env)").Envar("PLAYER_TOKEN").String()

	statusCmd = app.Command("status", "Show the footer and playback snapshot").Default()

	playCmd     = app.Command("play", "Play a track")
	playTrackID = playCmd.Arg("track-id", "Track ID").Required().String()
	playContext = playCmd.Flag("context", "Play the track within this playlist or album").String()

	playAllCmd = app.Command("play-collection", "Play a playlist or album from its first track")
	playAllID  = playAllCmd.Arg("collection-id", "Playlist or album ID").Required().String()

	enqueueCmd     = app.Command("enqueue", "Append a track to the queue")
	enqueueTrackID = enqueueCmd.Arg("track-id", "Track ID").Required().String()

	toggleCmd  = app.Command("toggle", "Toggle play/pause")
	seekCmd    = app.Command("seek", "Seek within the current track")
	seekTarget = seekCmd.Arg("position", "Target position (M:SS)").Required().String()
	volumeCmd  = app.Command("volume", "Set the volume")
	volumeArg  = volumeCmd.Arg("level", "Volume 0-100").Required().Int()
	muteCmd    = app.Command("mute", "Toggle mute")
	shuffleCmd = app.Command("shuffle", "Toggle shuffle")
	repeatCmd  = app.Command("repeat", "Cycle repeat mode (off, context, track)")
	nextCmd    = app.Command("next", "Skip to the next track")
	prevCmd    = app.Command("prev", "Go back to the previous track")
	stopCmd    = app.Command("stop", "Unload the queue")

	subscribeCmd = app.Command("subscribe", "Stream playback notifications")

	homeCmd       = app.Command("home", "Show the home page")
	searchCmd     = app.Command("search", "Search the catalog")
	searchQuery   = searchCmd.Arg("query", "Search query").Required().String()
	libraryCmd    = app.Command("library", "Show your library")
	artistCmd     = app.Command("artist", "Show an artist page")
	artistID      = artistCmd.Arg("artist-id", "Artist ID").Required().String()
	collectionCmd = app.Command("collection", "Show a playlist or album page")
	collectionID  = collectionCmd.Arg("collection-id", "Playlist or album ID").Required().String()

	followCmd    = app.Command("follow", "Follow an artist")
	followID     = followCmd.Arg("artist-id", "Artist ID").Required().String()
	unfollowCmd  = app.Command("unfollow", "Unfollow an artist")
	unfollowID   = unfollowCmd.Arg("artist-id", "Artist ID").Required().String()
	saveCmd      = app.Command("save", "Save a track, album or playlist")
	saveID       = saveCmd.Arg("id", "Track, album or playlist ID").Required().String()
	unsaveCmd    = app.Command("unsave", "Remove a saved item")
	unsaveID     = unsaveCmd.Arg("id", "Track, album or playlist ID").Required().String()
)

type clients struct {
	player *playerv1.PlayerServiceClient
	browse *playerv1.BrowseServiceClient
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	opts := []connect.ClientOption{
		connect.WithInterceptors(apiconnect.NewTokenHeaderInterceptor(*token)),
	}
	c := clients{
		player: playerv1.NewPlayerServiceClient(http.DefaultClient, *server, opts...),
		browse: playerv1.NewBrowseServiceClient(http.DefaultClient, *server, opts...),
	}

	ctx := context.Background()

	var err error
	switch command {
	case statusCmd.FullCommand():
		err = c.status(ctx)
	case playCmd.FullCommand():
		err = transport(c.player.PlayTrack(ctx, connect.NewRequest(&playerv1.PlayTrackRequest{TrackId: *playTrackID, ContextId: *playContext})))
	case playAllCmd.FullCommand():
		err = transport(c.player.PlayCollection(ctx, connect.NewRequest(&playerv1.PlayCollectionRequest{CollectionId: *playAllID})))
	case enqueueCmd.FullCommand():
		err = transport(c.player.Enqueue(ctx, connect.NewRequest(&playerv1.EnqueueRequest{TrackId: *enqueueTrackID})))
	case toggleCmd.FullCommand():
		err = transport(c.player.TogglePlayPause(ctx, connect.NewRequest(&playerv1.TogglePlayPauseRequest{})))
	case seekCmd.FullCommand():
		err = c.seek(ctx, *seekTarget)
	case volumeCmd.FullCommand():
		err = transport(c.player.SetVolume(ctx, connect.NewRequest(&playerv1.SetVolumeRequest{Volume: int32(*volumeArg)})))
	case muteCmd.FullCommand():
		err = transport(c.player.ToggleMute(ctx, connect.NewRequest(&playerv1.ToggleMuteRequest{})))
	case shuffleCmd.FullCommand():
		err = transport(c.player.ToggleShuffle(ctx, connect.NewRequest(&playerv1.ToggleShuffleRequest{})))
	case repeatCmd.FullCommand():
		err = transport(c.player.CycleRepeat(ctx, connect.NewRequest(&playerv1.CycleRepeatRequest{})))
	case nextCmd.FullCommand():
		err = transport(c.player.Next(ctx, connect.NewRequest(&playerv1.NextRequest{})))
	case prevCmd.FullCommand():
		err = transport(c.player.Previous(ctx, connect.NewRequest(&playerv1.PreviousRequest{})))
	case stopCmd.FullCommand():
		err = transport(c.player.Stop(ctx, connect.NewRequest(&playerv1.StopRequest{})))
	case subscribeCmd.FullCommand():
		err = c.subscribe(ctx)
	case homeCmd.FullCommand():
		err = c.home(ctx)
	case searchCmd.FullCommand():
		err = c.search(ctx, *searchQuery)
	case libraryCmd.FullCommand():
		err = c.library(ctx)
	case artistCmd.FullCommand():
		err = c.artist(ctx, *artistID)
	case collectionCmd.FullCommand():
		err = c.collection(ctx, *collectionID)
	case followCmd.FullCommand():
		err = c.follow(ctx, *followID, true)
	case unfollowCmd.FullCommand():
		err = c.follow(ctx, *unfollowID, false)
	case saveCmd.FullCommand():
		err = c.save(ctx, *saveID, true)
	case unsaveCmd.FullCommand():
		err = c.save(ctx, *unsaveID, false)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func (c clients) status(ctx context.Context) error {
	resp, err := c.player.GetSnapshot(ctx, connect.NewRequest(&playerv1.GetSnapshotRequest{}))
	if err != nil {
		return err
	}
	printFooter(os.Stdout, resp.Msg.Footer)
	printSnapshot(os.Stdout, resp.Msg.Snapshot)
	return nil
}

// seek accepts M:SS or plain seconds.
func (c clients) seek(ctx context.Context, target string) error {
	seconds, err := timefmt.Parse(target)
	if err != nil {
		n, convErr := strconv.Atoi(target)
		if convErr != nil {
			return err
		}
		seconds = n
	}
	return transport(c.player.Seek(ctx, connect.NewRequest(&playerv1.SeekRequest{PositionSeconds: int32(seconds)})))
}

func transport(resp *connect.Response[playerv1.TransportResponse], err error) error {
	if err != nil {
		return err
	}
	if !resp.Msg.Changed {
		fmt.Println("No change")
	}
	printSnapshot(os.Stdout, resp.Msg.Snapshot)
	return nil
}

func (c clients) subscribe(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stream, err := c.player.Subscribe(ctx, connect.NewRequest(&playerv1.SubscribeRequest{}))
	if err != nil {
		return err
	}
	defer stream.Close()

	fmt.Println("Subscribed to notifications. Press Ctrl+C to exit.")
	for stream.Receive() {
		printNotification(os.Stdout, stream.Msg())
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

func (c clients) home(ctx context.Context) error {
	resp, err := c.browse.GetHome(ctx, connect.NewRequest(&playerv1.GetHomeRequest{}))
	if err != nil {
		return err
	}
	printHome(os.Stdout, resp.Msg.Page)
	return nil
}

func (c clients) search(ctx context.Context, query string) error {
	resp, err := c.browse.Search(ctx, connect.NewRequest(&playerv1.SearchRequest{Query: query}))
	if err != nil {
		return err
	}
	printSearch(os.Stdout, resp.Msg.Page)
	return nil
}

func (c clients) library(ctx context.Context) error {
	resp, err := c.browse.GetLibrary(ctx, connect.NewRequest(&playerv1.GetLibraryRequest{}))
	if err != nil {
		return err
	}
	printLibrary(os.Stdout, resp.Msg.Page)
	return nil
}

func (c clients) artist(ctx context.Context, id string) error {
	resp, err := c.browse.GetArtist(ctx, connect.NewRequest(&playerv1.GetArtistRequest{ArtistId: id}))
	if err != nil {
		return err
	}
	printArtist(os.Stdout, resp.Msg.Page)
	return nil
}

func (c clients) collection(ctx context.Context, id string) error {
	resp, err := c.browse.GetCollection(ctx, connect.NewRequest(&playerv1.GetCollectionRequest{CollectionId: id}))
	if err != nil {
		return err
	}
	printCollection(os.Stdout, resp.Msg.Page)
	return nil
}

func (c clients) follow(ctx context.Context, id string, follow bool) error {
	resp, err := c.browse.Follow(ctx, connect.NewRequest(&playerv1.FollowRequest{ArtistId: id, Follow: follow}))
	if err != nil {
		return err
	}
	fmt.Printf("Following %s: %v\n", id, resp.Msg.Following)
	return nil
}

func (c clients) save(ctx context.Context, id string, save bool) error {
	resp, err := c.browse.Save(ctx, connect.NewRequest(&playerv1.SaveRequest{Id: id, Save: save}))
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s: %v\n", id, resp.Msg.Saved)
	return nil
}
