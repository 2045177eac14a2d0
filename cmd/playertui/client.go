package main

import (
	"context"
	"time"

	"connectrpc.com/connect"
	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/view"
)

const reconnectDelay = 2 * time.Second

type clients struct {
	player *playerv1.PlayerServiceClient
	browse *playerv1.BrowseServiceClient
}

// location addresses a page: a sidebar route, or a detail page by ID.
type location struct {
	route view.Route
	kind  string // "artist" or "collection" for detail pages
	id    string
	query string
}

// Message types
type (
	pageMsg struct {
		loc     location
		page    page
		sidebar view.Sidebar
		err     error
	}

	snapshotMsg struct {
		footer   view.Footer
		snapshot *playerv1.Snapshot
		err      error
	}

	notificationMsg struct {
		n *playerv1.Notification
	}

	transportMsg struct {
		snapshot *playerv1.Snapshot
		err      error
	}

	libraryMsg struct {
		status string
		err    error
	}
)

// stream forwards notifications to ch, reconnecting until ctx is done.
func (c clients) stream(ctx context.Context, ch chan<- *playerv1.Notification) {
	defer close(ch)
	for {
		s, err := c.player.Subscribe(ctx, connect.NewRequest(&playerv1.SubscribeRequest{}))
		if err == nil {
			for s.Receive() {
				select {
				case ch <- s.Msg():
				case <-ctx.Done():
					s.Close()
					return
				}
			}
			err = s.Err()
			s.Close()
		}
		if ctx.Err() != nil {
			return
		}
		zlog.Warn().Msgf("subscription lost, reconnecting: %v", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func waitForNotification(ch <-chan *playerv1.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg{n: n}
	}
}

func (c clients) fetchSnapshot(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.player.GetSnapshot(ctx, connect.NewRequest(&playerv1.GetSnapshotRequest{}))
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{footer: resp.Msg.Footer, snapshot: resp.Msg.Snapshot}
	}
}

func (c clients) loadPage(ctx context.Context, loc location) tea.Cmd {
	return func() tea.Msg {
		msg := pageMsg{loc: loc}

		sb, err := c.browse.GetSidebar(ctx, connect.NewRequest(&playerv1.GetSidebarRequest{Route: string(loc.route)}))
		if err != nil {
			msg.err = err
			return msg
		}
		msg.sidebar = sb.Msg.Sidebar

		switch {
		case loc.kind == "artist":
			resp, err := c.browse.GetArtist(ctx, connect.NewRequest(&playerv1.GetArtistRequest{ArtistId: loc.id}))
			if err == nil {
				msg.page = artistPage(resp.Msg.Page)
			}
			msg.err = err
		case loc.kind == "collection":
			resp, err := c.browse.GetCollection(ctx, connect.NewRequest(&playerv1.GetCollectionRequest{CollectionId: loc.id}))
			if err == nil {
				msg.page = collectionPage(resp.Msg.Page)
			}
			msg.err = err
		case loc.route == view.RouteSearch:
			resp, err := c.browse.Search(ctx, connect.NewRequest(&playerv1.SearchRequest{Query: loc.query}))
			if err == nil {
				msg.page = searchPage(resp.Msg.Page)
			}
			msg.err = err
		case loc.route == view.RouteLibrary:
			resp, err := c.browse.GetLibrary(ctx, connect.NewRequest(&playerv1.GetLibraryRequest{}))
			if err == nil {
				msg.page = libraryPage(resp.Msg.Page)
			}
			msg.err = err
		default:
			resp, err := c.browse.GetHome(ctx, connect.NewRequest(&playerv1.GetHomeRequest{}))
			if err == nil {
				msg.page = homePage(resp.Msg.Page)
			}
			msg.err = err
		}
		return msg
	}
}

// transport wraps a transport call into a command.
func transport[Req any](ctx context.Context, call func(context.Context, *connect.Request[Req]) (*connect.Response[playerv1.TransportResponse], error), req *Req) tea.Cmd {
	return func() tea.Msg {
		resp, err := call(ctx, connect.NewRequest(req))
		if err != nil {
			return transportMsg{err: err}
		}
		return transportMsg{snapshot: resp.Msg.Snapshot}
	}
}

func (c clients) follow(ctx context.Context, artistID string, follow bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.browse.Follow(ctx, connect.NewRequest(&playerv1.FollowRequest{ArtistId: artistID, Follow: follow}))
		if err != nil {
			return libraryMsg{err: err}
		}
		if resp.Msg.Following {
			return libraryMsg{status: "Following"}
		}
		return libraryMsg{status: "Unfollowed"}
	}
}

func (c clients) save(ctx context.Context, id string, save bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.browse.Save(ctx, connect.NewRequest(&playerv1.SaveRequest{Id: id, Save: save}))
		if err != nil {
			return libraryMsg{err: err}
		}
		if resp.Msg.Saved {
			return libraryMsg{status: "Saved to library"}
		}
		return libraryMsg{status: "Removed from library"}
	}
}
