package playerv1

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BrowseServiceName is the fully-qualified name of the BrowseService service.
const BrowseServiceName = "tunedeck.player.v1.BrowseService"

// These constants are the fully-qualified names of the RPCs defined in
// BrowseService, as they appear in the request path.
const (
	BrowseServiceGetSidebarProcedure    = "/tunedeck.player.v1.BrowseService/GetSidebar"
	BrowseServiceGetHomeProcedure       = "/tunedeck.player.v1.BrowseService/GetHome"
	BrowseServiceSearchProcedure        = "/tunedeck.player.v1.BrowseService/Search"
	BrowseServiceGetLibraryProcedure    = "/tunedeck.player.v1.BrowseService/GetLibrary"
	BrowseServiceGetArtistProcedure     = "/tunedeck.player.v1.BrowseService/GetArtist"
	BrowseServiceGetCollectionProcedure = "/tunedeck.player.v1.BrowseService/GetCollection"
	BrowseServiceFollowProcedure        = "/tunedeck.player.v1.BrowseService/Follow"
	BrowseServiceSaveProcedure          = "/tunedeck.player.v1.BrowseService/Save"
)

// IsBrowseMutation reports whether procedure changes the library.
func IsBrowseMutation(procedure string) bool {
	return procedure == BrowseServiceFollowProcedure || procedure == BrowseServiceSaveProcedure
}

// BrowseServiceHandler is an implementation of the BrowseService service.
type BrowseServiceHandler interface {
	GetSidebar(context.Context, *connect.Request[GetSidebarRequest]) (*connect.Response[GetSidebarResponse], error)
	GetHome(context.Context, *connect.Request[GetHomeRequest]) (*connect.Response[GetHomeResponse], error)
	Search(context.Context, *connect.Request[SearchRequest]) (*connect.Response[SearchResponse], error)
	GetLibrary(context.Context, *connect.Request[GetLibraryRequest]) (*connect.Response[GetLibraryResponse], error)
	GetArtist(context.Context, *connect.Request[GetArtistRequest]) (*connect.Response[GetArtistResponse], error)
	GetCollection(context.Context, *connect.Request[GetCollectionRequest]) (*connect.Response[GetCollectionResponse], error)
	Follow(context.Context, *connect.Request[FollowRequest]) (*connect.Response[FollowResponse], error)
	Save(context.Context, *connect.Request[SaveRequest]) (*connect.Response[SaveResponse], error)
}

// NewBrowseServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewBrowseServiceHandler(svc BrowseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	handlers := map[string]http.Handler{
		BrowseServiceGetSidebarProcedure:    connect.NewUnaryHandler(BrowseServiceGetSidebarProcedure, svc.GetSidebar, opts...),
		BrowseServiceGetHomeProcedure:       connect.NewUnaryHandler(BrowseServiceGetHomeProcedure, svc.GetHome, opts...),
		BrowseServiceSearchProcedure:        connect.NewUnaryHandler(BrowseServiceSearchProcedure, svc.Search, opts...),
		BrowseServiceGetLibraryProcedure:    connect.NewUnaryHandler(BrowseServiceGetLibraryProcedure, svc.GetLibrary, opts...),
		BrowseServiceGetArtistProcedure:     connect.NewUnaryHandler(BrowseServiceGetArtistProcedure, svc.GetArtist, opts...),
		BrowseServiceGetCollectionProcedure: connect.NewUnaryHandler(BrowseServiceGetCollectionProcedure, svc.GetCollection, opts...),
		BrowseServiceFollowProcedure:        connect.NewUnaryHandler(BrowseServiceFollowProcedure, svc.Follow, opts...),
		BrowseServiceSaveProcedure:          connect.NewUnaryHandler(BrowseServiceSaveProcedure, svc.Save, opts...),
	}
	return "/" + BrowseServiceName + "/", route(handlers)
}

// BrowseServiceClient is a client for the BrowseService service.
type BrowseServiceClient struct {
	getSidebar    *connect.Client[GetSidebarRequest, GetSidebarResponse]
	getHome       *connect.Client[GetHomeRequest, GetHomeResponse]
	search        *connect.Client[SearchRequest, SearchResponse]
	getLibrary    *connect.Client[GetLibraryRequest, GetLibraryResponse]
	getArtist     *connect.Client[GetArtistRequest, GetArtistResponse]
	getCollection *connect.Client[GetCollectionRequest, GetCollectionResponse]
	follow        *connect.Client[FollowRequest, FollowResponse]
	save          *connect.Client[SaveRequest, SaveResponse]
}

// NewBrowseServiceClient constructs a client for the BrowseService service.
func NewBrowseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BrowseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &BrowseServiceClient{
		getSidebar:    connect.NewClient[GetSidebarRequest, GetSidebarResponse](httpClient, baseURL+BrowseServiceGetSidebarProcedure, opts...),
		getHome:       connect.NewClient[GetHomeRequest, GetHomeResponse](httpClient, baseURL+BrowseServiceGetHomeProcedure, opts...),
		search:        connect.NewClient[SearchRequest, SearchResponse](httpClient, baseURL+BrowseServiceSearchProcedure, opts...),
		getLibrary:    connect.NewClient[GetLibraryRequest, GetLibraryResponse](httpClient, baseURL+BrowseServiceGetLibraryProcedure, opts...),
		getArtist:     connect.NewClient[GetArtistRequest, GetArtistResponse](httpClient, baseURL+BrowseServiceGetArtistProcedure, opts...),
		getCollection: connect.NewClient[GetCollectionRequest, GetCollectionResponse](httpClient, baseURL+BrowseServiceGetCollectionProcedure, opts...),
		follow:        connect.NewClient[FollowRequest, FollowResponse](httpClient, baseURL+BrowseServiceFollowProcedure, opts...),
		save:          connect.NewClient[SaveRequest, SaveResponse](httpClient, baseURL+BrowseServiceSaveProcedure, opts...),
	}
}

// GetSidebar calls tunedeck.player.v1.BrowseService.GetSidebar.
func (c *BrowseServiceClient) GetSidebar(ctx context.Context, req *connect.Request[GetSidebarRequest]) (*connect.Response[GetSidebarResponse], error) {
	return c.getSidebar.CallUnary(ctx, req)
}

// GetHome calls tunedeck.player.v1.BrowseService.GetHome.
func (c *BrowseServiceClient) GetHome(ctx context.Context, req *connect.Request[GetHomeRequest]) (*connect.Response[GetHomeResponse], error) {
	return c.getHome.CallUnary(ctx, req)
}

// Search calls tunedeck.player.v1.BrowseService.Search.
func (c *BrowseServiceClient) Search(ctx context.Context, req *connect.Request[SearchRequest]) (*connect.Response[SearchResponse], error) {
	return c.search.CallUnary(ctx, req)
}

// GetLibrary calls tunedeck.player.v1.BrowseService.GetLibrary.
func (c *BrowseServiceClient) GetLibrary(ctx context.Context, req *connect.Request[GetLibraryRequest]) (*connect.Response[GetLibraryResponse], error) {
	return c.getLibrary.CallUnary(ctx, req)
}

// GetArtist calls tunedeck.player.v1.BrowseService.GetArtist.
func (c *BrowseServiceClient) GetArtist(ctx context.Context, req *connect.Request[GetArtistRequest]) (*connect.Response[GetArtistResponse], error) {
	return c.getArtist.CallUnary(ctx, req)
}

// GetCollection calls tunedeck.player.v1.BrowseService.GetCollection.
func (c *BrowseServiceClient) GetCollection(ctx context.Context, req *connect.Request[GetCollectionRequest]) (*connect.Response[GetCollectionResponse], error) {
	return c.getCollection.CallUnary(ctx, req)
}

// Follow calls tunedeck.player.v1.BrowseService.Follow.
func (c *BrowseServiceClient) Follow(ctx context.Context, req *connect.Request[FollowRequest]) (*connect.Response[FollowResponse], error) {
	return c.follow.CallUnary(ctx, req)
}

// Save calls tunedeck.player.v1.BrowseService.Save.
func (c *BrowseServiceClient) Save(ctx context.Context, req *connect.Request[SaveRequest]) (*connect.Response[SaveResponse], error) {
	return c.save.CallUnary(ctx, req)
}
