package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET", "SPOTIFY_REFRESH_TOKEN", "LASTFM_API_KEY", "PLAYER_TOKEN"} {
		t.Setenv(key, "")
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.Token)
	assert.Equal(t, time.Second, cfg.Playback.TickInterval())
	assert.Equal(t, 50, cfg.Playback.DefaultVolume)
	assert.Equal(t, "fixed", cfg.Playback.MuteRestore)
	assert.Equal(t, 64, cfg.Playback.EventBuffer)
	assert.Equal(t, 20, cfg.Catalog.SearchLimit)
	assert.Equal(t, "JP", cfg.Spotify.Market)
	assert.Equal(t, 10, cfg.LastFm.ChartLimit)
	assert.False(t, cfg.LastFm.Enabled())

	require.Len(t, cfg.Catalog.Sources, 1)
	assert.Equal(t, SourceFixture, cfg.Catalog.Sources[0].Type)
	assert.True(t, cfg.HasSource(SourceFixture))
	assert.False(t, cfg.HasSource(SourceSpotify))
}

func TestParse_FullDocument(t *testing.T) {
	clearEnv(t)

	data := []byte(`
server:
  addr: ":9090"
  token: secret
  hooks:
    on_started: ["echo started"]
playback:
  tick_interval_ms: 500
  default_volume: 70
  mute_restore: last
catalog:
  search_limit: 5
  sources:
    - type: fixture
      display_name: Demo
    - type: local
      display_name: Library
      settings:
        root: /music
        watch: true
lastfm:
  api_key: lfm
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "secret", cfg.Server.Token)
	assert.Equal(t, []string{"echo started"}, cfg.Server.Hooks.OnStarted)
	assert.Equal(t, 500*time.Millisecond, cfg.Playback.TickInterval())
	assert.Equal(t, 70, cfg.Playback.DefaultVolume)
	assert.Equal(t, "last", cfg.Playback.MuteRestore)
	assert.Equal(t, 5, cfg.Catalog.SearchLimit)
	require.Len(t, cfg.Catalog.Sources, 2)
	assert.Equal(t, "/music", cfg.Catalog.Sources[1].Settings["root"])
	assert.Equal(t, true, cfg.Catalog.Sources[1].Settings["watch"])
	assert.True(t, cfg.LastFm.Enabled())
}

func TestConfig_Validate(t *testing.T) {
	validSpotify := SpotifyConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RefreshToken: "test-refresh-token",
		Market:       "JP",
	}
	validPlayback := PlaybackConfig{TickIntervalMs: 1000, DefaultVolume: 50, MuteRestore: "fixed", EventBuffer: 64}
	validCatalog := CatalogConfig{SearchLimit: 20, Sources: []SourceConfig{{Type: SourceFixture, DisplayName: "Demo"}}}
	validLastFm := LastFmConfig{ChartLimit: 10}

	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			config: Config{Playback: validPlayback, Catalog: validCatalog, LastFm: validLastFm},
		},
		{
			name: "spotify source with credentials",
			config: Config{
				Playback: validPlayback,
				Catalog:  CatalogConfig{SearchLimit: 20, Sources: []SourceConfig{{Type: SourceSpotify, DisplayName: "Spotify"}}},
				Spotify:  validSpotify,
				LastFm:   validLastFm,
			},
		},
		{
			name: "spotify source without client id",
			config: Config{
				Playback: validPlayback,
				Catalog:  CatalogConfig{SearchLimit: 20, Sources: []SourceConfig{{Type: SourceSpotify, DisplayName: "Spotify"}}},
				Spotify:  SpotifyConfig{ClientSecret: "s", RefreshToken: "r"},
				LastFm:   validLastFm,
			},
			wantErr: true,
			errMsg:  "client_id",
		},
		{
			name: "spotify source without refresh token",
			config: Config{
				Playback: validPlayback,
				Catalog:  CatalogConfig{SearchLimit: 20, Sources: []SourceConfig{{Type: SourceSpotify, DisplayName: "Spotify"}}},
				Spotify:  SpotifyConfig{ClientID: "c", ClientSecret: "s"},
				LastFm:   validLastFm,
			},
			wantErr: true,
			errMsg:  "refresh_token",
		},
		{
			name: "unknown source type",
			config: Config{
				Playback: validPlayback,
				Catalog:  CatalogConfig{SearchLimit: 20, Sources: []SourceConfig{{Type: "ftp", DisplayName: "FTP"}}},
				LastFm:   validLastFm,
			},
			wantErr: true,
			errMsg:  "Type",
		},
		{
			name: "source without display name",
			config: Config{
				Playback: validPlayback,
				Catalog:  CatalogConfig{SearchLimit: 20, Sources: []SourceConfig{{Type: SourceFixture}}},
				LastFm:   validLastFm,
			},
			wantErr: true,
			errMsg:  "DisplayName",
		},
		{
			name: "unknown mute restore policy",
			config: Config{
				Playback: PlaybackConfig{TickIntervalMs: 1000, DefaultVolume: 50, MuteRestore: "previous", EventBuffer: 64},
				Catalog:  validCatalog,
				LastFm:   validLastFm,
			},
			wantErr: true,
			errMsg:  "MuteRestore",
		},
		{
			name: "default volume out of range",
			config: Config{
				Playback: PlaybackConfig{TickIntervalMs: 1000, DefaultVolume: 101, MuteRestore: "fixed", EventBuffer: 64},
				Catalog:  validCatalog,
				LastFm:   validLastFm,
			},
			wantErr: true,
			errMsg:  "DefaultVolume",
		},
		{
			name: "invalid market",
			config: Config{
				Playback: validPlayback,
				Catalog:  validCatalog,
				Spotify:  SpotifyConfig{Market: "JPN"},
				LastFm:   validLastFm,
			},
			wantErr: true,
			errMsg:  "Market",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "env-secret")
	t.Setenv("SPOTIFY_REFRESH_TOKEN", "env-refresh")
	t.Setenv("LASTFM_API_KEY", "env-lastfm")
	t.Setenv("PLAYER_TOKEN", "env-token")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  token: file-token
catalog:
  sources:
    - type: spotify
      display_name: Spotify
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.Spotify.ClientID)
	assert.Equal(t, "env-secret", cfg.Spotify.ClientSecret)
	assert.Equal(t, "env-refresh", cfg.Spotify.RefreshToken)
	assert.Equal(t, "env-lastfm", cfg.LastFm.APIKey)
	assert.Equal(t, "env-token", cfg.Server.Token)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.HasSource(SourceFixture))
}
