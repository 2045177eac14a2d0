package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/tunedeck/internal/infra/config"
)

func TestNewChainFromConfig(t *testing.T) {
	factories := map[string]Factory{config.SourceFixture: FixtureFactory}

	t.Run("fixture source", func(t *testing.T) {
		chain, err := NewChainFromConfig(config.CatalogConfig{
			Sources: []config.SourceConfig{{Type: config.SourceFixture, DisplayName: "Demo"}},
		}, factories)
		require.NoError(t, err)
		require.Len(t, chain.Sources(), 1)
		assert.Equal(t, "Demo", chain.Sources()[0].DisplayName)

		_, err = chain.Get(context.Background(), "pl1")
		assert.NoError(t, err)
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := NewChainFromConfig(config.CatalogConfig{}, factories)
		assert.Error(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := NewChainFromConfig(config.CatalogConfig{
			Sources: []config.SourceConfig{{Type: config.SourceSpotify, DisplayName: "Spotify"}},
		}, factories)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported source type")
	})
}

func TestDecodeSettings(t *testing.T) {
	type settings struct {
		Root  string `mapstructure:"root" validate:"required"`
		Watch bool   `mapstructure:"watch"`
		Depth int    `mapstructure:"depth" default:"4" validate:"gte=1"`
	}

	tests := []struct {
		name    string
		input   map[string]any
		want    settings
		wantErr bool
	}{
		{
			name:  "defaults applied",
			input: map[string]any{"root": "/music"},
			want:  settings{Root: "/music", Depth: 4},
		},
		{
			name:  "explicit values",
			input: map[string]any{"root": "/music", "watch": true, "depth": 2},
			want:  settings{Root: "/music", Watch: true, Depth: 2},
		},
		{
			name:    "missing required",
			input:   map[string]any{"watch": true},
			wantErr: true,
		},
		{
			name:    "wrong type",
			input:   map[string]any{"root": "/music", "depth": "deep"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got settings
			err := DecodeSettings(tt.input, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
