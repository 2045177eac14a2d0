// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Source types understood by the catalog factory.
const (
	SourceFixture = "fixture"
	SourceLocal   = "local"
	SourceSpotify = "spotify"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Playback PlaybackConfig `yaml:"playback"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	LastFm   LastFmConfig   `yaml:"lastfm"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr  string      `yaml:"addr" default:":8080"`
	Token string      `yaml:"token"` // Required on mutating calls when set
	Hooks HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// PlaybackConfig represents playback control configuration.
type PlaybackConfig struct {
	TickIntervalMs int    `yaml:"tick_interval_ms" default:"1000" validate:"gte=100,lte=10000"`
	DefaultVolume  int    `yaml:"default_volume" default:"50" validate:"gte=1,lte=100"`
	MuteRestore    string `yaml:"mute_restore" default:"fixed" validate:"oneof=fixed last"`
	EventBuffer    int    `yaml:"event_buffer" default:"64" validate:"gte=1"`
}

// TickInterval returns the position ticker period.
func (p PlaybackConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMs) * time.Millisecond
}

// CatalogConfig represents catalog configuration.
type CatalogConfig struct {
	SearchLimit int            `yaml:"search_limit" default:"20" validate:"gte=1,lte=50"`
	Sources     []SourceConfig `yaml:"sources" validate:"dive"`
}

// SourceConfig represents a single catalog source.
type SourceConfig struct {
	Type        string         `yaml:"type" validate:"required,oneof=fixture local spotify"`
	DisplayName string         `yaml:"display_name" validate:"required"`
	Settings    map[string]any `yaml:"settings"`
}

// SpotifyConfig represents Spotify API configuration.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	Market       string `yaml:"market" validate:"omitempty,len=2" default:"JP"`
}

// LastFmConfig represents Last.fm API configuration.
type LastFmConfig struct {
	APIKey     string `yaml:"api_key"`
	ChartLimit int    `yaml:"chart_limit" default:"10" validate:"gte=1,lte=50"`
}

// Enabled reports whether an API key is configured.
func (l LastFmConfig) Enabled() bool {
	return l.APIKey != ""
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for sensitive fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse(data)
}

// Parse parses configuration from YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	cfg := &Config{}
	cfg.overrideFromEnv()
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

func (c *Config) setDefaults() error {
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if len(c.Catalog.Sources) == 0 {
		c.Catalog.Sources = []SourceConfig{{Type: SourceFixture, DisplayName: "Demo"}}
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Spotify.RefreshToken = v
	}
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		c.LastFm.APIKey = v
	}
	if v := os.Getenv("PLAYER_TOKEN"); v != "" {
		c.Server.Token = v
	}
}

// HasSource reports whether a source of the given type is configured.
func (c *Config) HasSource(sourceType string) bool {
	for _, s := range c.Catalog.Sources {
		if s.Type == sourceType {
			return true
		}
	}
	return false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	if err := c.validateSpotifyCredentials(); err != nil {
		return err
	}

	return nil
}

// validateSpotifyCredentials checks that credentials exist when a spotify
// source is configured.
func (c *Config) validateSpotifyCredentials() error {
	if !c.HasSource(SourceSpotify) {
		return nil
	}
	if c.Spotify.ClientID == "" {
		return errors.New("spotify.client_id is required for a spotify source")
	}
	if c.Spotify.ClientSecret == "" {
		return errors.New("spotify.client_secret is required for a spotify source")
	}
	if c.Spotify.RefreshToken == "" {
		return errors.New("spotify.refresh_token is required for a spotify source")
	}
	return nil
}
