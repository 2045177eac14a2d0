package spotify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zmb3/spotify/v2"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind string
		wantID   string
		wantOK   bool
	}{
		{
			name:     "playlist URI",
			input:    "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M",
			wantKind: "playlist",
			wantID:   "37i9dQZF1DXcBWIGoYBM5M",
			wantOK:   true,
		},
		{
			name:     "track URL",
			input:    "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			wantKind: "track",
			wantID:   "4uLU6hMCjMI75M1A2tKUQC",
			wantOK:   true,
		},
		{
			name:     "URL with query params",
			input:    "https://open.spotify.com/playlist/abc123?si=xyz&utm_source=copy",
			wantKind: "playlist",
			wantID:   "abc123",
			wantOK:   true,
		},
		{
			name:     "localized URL",
			input:    "https://open.spotify.com/intl-ja/album/alb42/",
			wantKind: "album",
			wantID:   "alb42",
			wantOK:   true,
		},
		{
			name:     "HTTP URL (not HTTPS)",
			input:    "http://open.spotify.com/artist/testID",
			wantKind: "artist",
			wantID:   "testID",
			wantOK:   true,
		},
		{name: "plain ID", input: "37i9dQZF1DXcBWIGoYBM5M"},
		{name: "fixture ID", input: "pl1"},
		{name: "empty string", input: ""},
		{name: "unknown kind", input: "spotify:show:abc"},
		{name: "missing id", input: "spotify:track:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, id, ok := ParseID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKind, kind)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestURI(t *testing.T) {
	assert.Equal(t, "spotify:track:abc", URI(kindTrack, spotify.ID("abc")))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "rate limit error with 429", err: errors.New("Error 429: rate limit exceeded"), expected: true},
		{name: "server error 503", err: errors.New("503 Service Unavailable"), expected: true},
		{name: "client error 400", err: errors.New("400 Bad Request"), expected: false},
		{name: "api 429", err: spotify.Error{Message: "slow down", Status: 429}, expected: true},
		{name: "api 502", err: spotify.Error{Message: "bad gateway", Status: 502}, expected: true},
		{name: "api 404", err: spotify.Error{Message: "non existing id", Status: 404}, expected: false},
		{name: "generic error", err: errors.New("something went wrong"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetryable(tt.err))
		})
	}
}

func TestClient_Retry(t *testing.T) {
	c := newClient(&fakeAPI{}, "")
	c.retryDelay = time.Millisecond
	assert.Equal(t, "JP", c.Market())

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := c.retry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return spotify.Error{Status: 503}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := c.retry(context.Background(), func() error {
			calls++
			return spotify.Error{Status: 500}
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent error", func(t *testing.T) {
		calls := 0
		err := c.retry(context.Background(), func() error {
			calls++
			return spotify.Error{Status: 404}
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancelled", func(t *testing.T) {
		slow := newClient(&fakeAPI{}, "JP")
		slow.retryDelay = time.Hour
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := slow.retry(ctx, func() error {
			return spotify.Error{Status: 500}
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{ClientID: "id"})
	assert.Error(t, err)
}
