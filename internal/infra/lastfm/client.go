// Package lastfm provides a client for the Last.fm API.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// Client is a Last.fm API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// Cache for artist.getInfo
	artistInfoCache map[string]*ArtistInfo
	// Cache for artist.getSimilar
	similarCache map[string][]SimilarArtist

	// Mutex for cache access
	cacheMu sync.RWMutex
}

// Config represents Last.fm client configuration.
type Config struct {
	APIKey string
}

// ArtistInfo represents artist details from Last.fm.
type ArtistInfo struct {
	Name      string
	Bio       string // Plain-text summary
	Listeners int
	URL       string
}

// SimilarArtist represents a similar artist from Last.fm.
type SimilarArtist struct {
	Name  string
	Match float64 // 0-1 similarity
}

// TopTrack represents a chart track.
type TopTrack struct {
	Name   string
	Artist string
}

// GetArtistInfoResponse represents the response from artist.getInfo API.
type GetArtistInfoResponse struct {
	Artist struct {
		Name  string `json:"name"`
		URL   string `json:"url"`
		Stats struct {
			Listeners string `json:"listeners"`
		} `json:"stats"`
		Bio struct {
			Summary string `json:"summary"`
		} `json:"bio"`
	} `json:"artist"`
}

// GetSimilarArtistsResponse represents the response from artist.getSimilar API.
type GetSimilarArtistsResponse struct {
	SimilarArtists struct {
		Artist []struct {
			Name  string `json:"name"`
			Match string `json:"match"`
		} `json:"artist"`
	} `json:"similarartists"`
}

// GetTopTracksResponse represents the response from chart.getTopTracks API.
type GetTopTracksResponse struct {
	Tracks struct {
		Track []struct {
			Name   string `json:"name"`
			Artist struct {
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"track"`
	} `json:"tracks"`
}

// LastFMError represents an error response from Last.fm API.
type LastFMError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// New creates a new Last.fm client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("last.fm API key is required")
	}

	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         "https://ws.audioscrobbler.com/2.0/",
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		artistInfoCache: make(map[string]*ArtistInfo),
		similarCache:    make(map[string][]SimilarArtist),
	}, nil
}

// GetArtistInfo retrieves the biography and listener count of an artist.
// Reference: https://www.last.fm/api/show/artist.getInfo
func (c *Client) GetArtistInfo(ctx context.Context, artistName string) (*ArtistInfo, error) {
	if artistName == "" {
		return nil, errors.New("artist name is required")
	}

	// Check cache first
	cacheKey := strings.ToLower(artistName)
	c.cacheMu.RLock()
	if info, ok := c.artistInfoCache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		zlog.Debug().Msgf("using cached artist info: %s", artistName)
		return info, nil
	}
	c.cacheMu.RUnlock()

	params := url.Values{}
	params.Set("method", "artist.getInfo")
	params.Set("artist", artistName)
	params.Set("autocorrect", "1")

	var response GetArtistInfoResponse
	if err := c.call(ctx, params, &response); err != nil {
		return nil, err
	}

	listeners, _ := strconv.Atoi(response.Artist.Stats.Listeners)
	info := &ArtistInfo{
		Name:      response.Artist.Name,
		Bio:       stripReadMore(response.Artist.Bio.Summary),
		Listeners: listeners,
		URL:       response.Artist.URL,
	}

	// Cache the result
	c.cacheMu.Lock()
	c.artistInfoCache[cacheKey] = info
	c.cacheMu.Unlock()
	zlog.Debug().Msgf("cached artist info: %s (listeners: %d)", artistName, listeners)

	return info, nil
}

// GetSimilarArtists retrieves artists similar to the given one.
// Reference: https://www.last.fm/api/show/artist.getSimilar
func (c *Client) GetSimilarArtists(ctx context.Context, artistName string, limit int) ([]SimilarArtist, error) {
	if artistName == "" {
		return nil, errors.New("artist name is required")
	}

	limit = clampLimit(limit, 10)

	cacheKey := fmt.Sprintf("%s:%d", strings.ToLower(artistName), limit)
	c.cacheMu.RLock()
	if artists, ok := c.similarCache[cacheKey]; ok {
		c.cacheMu.RUnlock()
		zlog.Debug().Msgf("using cached similar artists: %s", artistName)
		return artists, nil
	}
	c.cacheMu.RUnlock()

	params := url.Values{}
	params.Set("method", "artist.getSimilar")
	params.Set("artist", artistName)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("autocorrect", "1")

	var response GetSimilarArtistsResponse
	if err := c.call(ctx, params, &response); err != nil {
		return nil, err
	}

	artists := make([]SimilarArtist, 0, len(response.SimilarArtists.Artist))
	for _, a := range response.SimilarArtists.Artist {
		match, _ := strconv.ParseFloat(a.Match, 64)
		artists = append(artists, SimilarArtist{
			Name:  a.Name,
			Match: match,
		})
	}

	c.cacheMu.Lock()
	c.similarCache[cacheKey] = artists
	c.cacheMu.Unlock()
	zlog.Debug().Msgf("cached similar artists: %s (count: %d)", artistName, len(artists))

	return artists, nil
}

// GetChartTopTracks retrieves global top tracks from Last.fm charts.
// Reference: https://www.last.fm/api/show/chart.getTopTracks
func (c *Client) GetChartTopTracks(ctx context.Context, limit int) ([]TopTrack, error) {
	limit = clampLimit(limit, 20)

	params := url.Values{}
	params.Set("method", "chart.getTopTracks")
	params.Set("limit", fmt.Sprintf("%d", limit))

	var response GetTopTracksResponse
	if err := c.call(ctx, params, &response); err != nil {
		return nil, err
	}

	tracks := make([]TopTrack, 0, len(response.Tracks.Track))
	for _, t := range response.Tracks.Track {
		tracks = append(tracks, TopTrack{
			Name:   t.Name,
			Artist: t.Artist.Name,
		})
	}

	return tracks, nil
}

// call performs a GET request and decodes the JSON body into out.
func (c *Client) call(ctx context.Context, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	// Check for Last.fm API errors
	var apiError LastFMError
	if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error != 0 {
		return errors.Errorf("last.fm API error %d: %s", apiError.Error, apiError.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("last.fm API returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to parse response")
	}
	return nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// stripReadMore removes the trailing "Read more on Last.fm" link.
func stripReadMore(summary string) string {
	if i := strings.Index(summary, "<a href"); i >= 0 {
		summary = summary[:i]
	}
	return strings.TrimSpace(summary)
}
