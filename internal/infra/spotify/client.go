// Package spotify provides a Spotify-backed catalog source.
package spotify

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// Scopes are the OAuth scopes the catalog needs.
var Scopes = []string{
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopeUserLibraryRead,
	spotifyauth.ScopeUserFollowRead,
}

// api is the subset of the Spotify Web API used by the catalog.
type api interface {
	GetTrack(ctx context.Context, id spotify.ID, opts ...spotify.RequestOption) (*spotify.FullTrack, error)
	GetAlbum(ctx context.Context, id spotify.ID, opts ...spotify.RequestOption) (*spotify.FullAlbum, error)
	GetPlaylist(ctx context.Context, playlistID spotify.ID, opts ...spotify.RequestOption) (*spotify.FullPlaylist, error)
	GetPlaylistItems(ctx context.Context, playlistID spotify.ID, opts ...spotify.RequestOption) (*spotify.PlaylistItemPage, error)
	GetArtist(ctx context.Context, id spotify.ID) (*spotify.FullArtist, error)
	GetArtistsTopTracks(ctx context.Context, artistID spotify.ID, country string) ([]spotify.FullTrack, error)
	GetArtistAlbums(ctx context.Context, artistID spotify.ID, ts []spotify.AlbumType, opts ...spotify.RequestOption) (*spotify.SimpleAlbumPage, error)
	Search(ctx context.Context, query string, t spotify.SearchType, opts ...spotify.RequestOption) (*spotify.SearchResult, error)
	FeaturedPlaylists(ctx context.Context, opts ...spotify.RequestOption) (string, *spotify.SimplePlaylistPage, error)
	NewReleases(ctx context.Context, opts ...spotify.RequestOption) (*spotify.SimpleAlbumPage, error)
}

var _ api = (*spotify.Client)(nil)

// Config represents Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Market       string
}

// Client is a Spotify Web API client with retries.
type Client struct {
	client     api
	market     string
	maxRetries int
	retryDelay time.Duration
}

// New creates a new Spotify client authorized by a refresh token.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("spotify credentials are required")
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(Scopes...),
	)

	token := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
	}

	// Refreshes the access token on demand.
	httpClient := auth.Client(ctx, token)

	return newClient(spotify.New(httpClient), cfg.Market), nil
}

func newClient(c api, market string) *Client {
	if market == "" {
		market = "JP"
	}
	return &Client{
		client:     c,
		market:     market,
		maxRetries: 3,
		retryDelay: time.Second,
	}
}

// Market returns the market used for track relinking and top tracks.
func (c *Client) Market() string {
	return c.market
}

// retry retries an operation with linear backoff.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			return err
		}

		if i < c.maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(i+1)):
			}
		}
	}
	return errors.Wrap(lastErr, "max retries exceeded")
}

// isRetryable checks if an error is retryable.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr spotify.Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status == 429 || apiErr.Status >= 500
	}

	errStr := err.Error()
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "504")
}

// isNotFound reports whether the API rejected the ID.
func isNotFound(err error) bool {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == 404 || apiErr.Status == 400
	}
	return false
}

// ParseID splits a Spotify URI (spotify:track:ID) or open.spotify.com URL
// into its kind and bare ID. ok is false for anything else.
func ParseID(input string) (kind, id string, ok bool) {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "spotify:") {
		parts := strings.Split(input, ":")
		if len(parts) != 3 || parts[2] == "" {
			return "", "", false
		}
		return parts[1], parts[2], validKind(parts[1])
	}

	if i := strings.Index(input, "open.spotify.com/"); i >= 0 {
		path := strings.Split(input[i+len("open.spotify.com/"):], "?")[0]
		segments := strings.Split(strings.Trim(path, "/"), "/")
		// intl-XX/track/ID
		if len(segments) == 3 && strings.HasPrefix(segments[0], "intl-") {
			segments = segments[1:]
		}
		if len(segments) != 2 || segments[1] == "" {
			return "", "", false
		}
		return segments[0], segments[1], validKind(segments[0])
	}

	return "", "", false
}

// URI builds the catalog ID for a Spotify object.
func URI(kind string, id spotify.ID) string {
	return "spotify:" + kind + ":" + string(id)
}

func validKind(kind string) bool {
	switch kind {
	case kindTrack, kindAlbum, kindPlaylist, kindArtist:
		return true
	default:
		return false
	}
}
