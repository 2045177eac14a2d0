package lastfm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{APIKey: "test_key"})
	require.NoError(t, err)
	client.baseURL = server.URL + "/"
	return client
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestGetArtistInfo(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "artist.getInfo", r.URL.Query().Get("method"))
		assert.Equal(t, "DJ Dora", r.URL.Query().Get("artist"))
		assert.Equal(t, "test_key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		response := `{
			"artist": {
				"name": "DJ Dora",
				"url": "https://www.last.fm/music/DJ+Dora",
				"stats": {"listeners": "1293000", "playcount": "9000000"},
				"bio": {"summary": "Futuristic funk from the 22nd century. <a href=\"https://www.last.fm/music/DJ+Dora\">Read more on Last.fm</a>"}
			}
		}`
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, response)
	})

	ctx := context.Background()
	info, err := client.GetArtistInfo(ctx, "DJ Dora")
	require.NoError(t, err)
	assert.Equal(t, "DJ Dora", info.Name)
	assert.Equal(t, 1293000, info.Listeners)
	assert.Equal(t, "Futuristic funk from the 22nd century.", info.Bio)

	// Second call is served from the cache
	cached, err := client.GetArtistInfo(ctx, "dj dora")
	require.NoError(t, err)
	assert.Equal(t, info, cached)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetArtistInfo_EmptyName(t *testing.T) {
	client, err := New(Config{APIKey: "test_key"})
	require.NoError(t, err)

	_, err = client.GetArtistInfo(context.Background(), "")
	assert.Error(t, err)
}

func TestGetSimilarArtists(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "artist.getSimilar", r.URL.Query().Get("method"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		response := `{
			"similarartists": {
				"artist": [
					{"name": "DJ Pocket", "match": "0.91"},
					{"name": "The Space Cadets", "match": "0.5"}
				]
			}
		}`
		fmt.Fprint(w, response)
	})

	artists, err := client.GetSimilarArtists(context.Background(), "DJ Dora", 5)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "DJ Pocket", artists[0].Name)
	assert.InDelta(t, 0.91, artists[0].Match, 0.0001)
}

func TestGetChartTopTracks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chart.getTopTracks", r.URL.Query().Get("method"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		response := `{
			"tracks": {
				"track": [
					{"name": "Future Funk", "artist": {"name": "DJ Dora"}, "listeners": "1000"},
					{"name": "Anywhere Doorstep", "artist": {"name": "Nobita & The Beats"}, "listeners": "500"}
				]
			}
		}`
		fmt.Fprint(w, response)
	})

	tracks, err := client.GetChartTopTracks(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []TopTrack{
		{Name: "Future Funk", Artist: "DJ Dora"},
		{Name: "Anywhere Doorstep", Artist: "Nobita & The Beats"},
	}, tracks)
}

func TestAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": 10, "message": "Invalid API key"}`)
	})

	_, err := client.GetChartTopTracks(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetSimilarArtists(context.Background(), "DJ Dora", 5)
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, def, want int
	}{
		{limit: 0, def: 20, want: 20},
		{limit: -1, def: 10, want: 10},
		{limit: 50, def: 20, want: 50},
		{limit: 500, def: 20, want: 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, clampLimit(tt.limit, tt.def))
		})
	}
}
