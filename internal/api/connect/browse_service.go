package connect

import (
	"context"

	"connectrpc.com/connect"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/session"
	"github.com/osa030/tunedeck/internal/app/view"
)

// BrowseService implements the BrowseService RPC. Page calls answer a
// catalog miss with a not_found page rather than an error.
type BrowseService struct {
	session *session.Manager
}

// NewBrowseService creates a new BrowseService.
func NewBrowseService(session *session.Manager) *BrowseService {
	return &BrowseService{session: session}
}

// Ensure BrowseService implements the interface.
var _ playerv1.BrowseServiceHandler = (*BrowseService)(nil)

// GetSidebar returns the navigation panel.
func (s *BrowseService) GetSidebar(
	ctx context.Context,
	req *connect.Request[playerv1.GetSidebarRequest],
) (*connect.Response[playerv1.GetSidebarResponse], error) {
	return connect.NewResponse(&playerv1.GetSidebarResponse{
		Sidebar: view.BuildSidebar(view.Route(req.Msg.Route)),
	}), nil
}

// GetHome returns the home page.
func (s *BrowseService) GetHome(
	ctx context.Context,
	req *connect.Request[playerv1.GetHomeRequest],
) (*connect.Response[playerv1.GetHomeResponse], error) {
	page, err := s.session.Builder().Home(ctx, s.session.Snapshot())
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&playerv1.GetHomeResponse{Page: page}), nil
}

// Search returns the search page.
func (s *BrowseService) Search(
	ctx context.Context,
	req *connect.Request[playerv1.SearchRequest],
) (*connect.Response[playerv1.SearchResponse], error) {
	page, err := s.session.Builder().Search(ctx, s.session.Snapshot(), req.Msg.Query)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&playerv1.SearchResponse{Page: page}), nil
}

// GetLibrary returns the library page.
func (s *BrowseService) GetLibrary(
	ctx context.Context,
	req *connect.Request[playerv1.GetLibraryRequest],
) (*connect.Response[playerv1.GetLibraryResponse], error) {
	page, err := s.session.Builder().Library(ctx, s.session.Snapshot())
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&playerv1.GetLibraryResponse{Page: page}), nil
}

// GetArtist returns an artist page.
func (s *BrowseService) GetArtist(
	ctx context.Context,
	req *connect.Request[playerv1.GetArtistRequest],
) (*connect.Response[playerv1.GetArtistResponse], error) {
	page, err := s.session.Builder().Artist(ctx, s.session.Snapshot(), req.Msg.ArtistId)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&playerv1.GetArtistResponse{Page: page}), nil
}

// GetCollection returns a playlist or album page.
func (s *BrowseService) GetCollection(
	ctx context.Context,
	req *connect.Request[playerv1.GetCollectionRequest],
) (*connect.Response[playerv1.GetCollectionResponse], error) {
	page, err := s.session.Builder().Collection(ctx, s.session.Snapshot(), req.Msg.CollectionId)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&playerv1.GetCollectionResponse{Page: page}), nil
}

// Follow follows or unfollows an artist.
func (s *BrowseService) Follow(
	ctx context.Context,
	req *connect.Request[playerv1.FollowRequest],
) (*connect.Response[playerv1.FollowResponse], error) {
	following, err := s.session.Follow(ctx, req.Msg.ArtistId, req.Msg.Follow)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&playerv1.FollowResponse{Following: following}), nil
}

// Save saves or removes a library item.
func (s *BrowseService) Save(
	ctx context.Context,
	req *connect.Request[playerv1.SaveRequest],
) (*connect.Response[playerv1.SaveResponse], error) {
	saved, err := s.session.Save(ctx, req.Msg.Id, req.Msg.Save)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&playerv1.SaveResponse{Saved: saved}), nil
}
