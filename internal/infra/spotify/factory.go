package spotify

import (
	"context"

	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/infra/config"
)

// settings are the per-source options of a spotify catalog source.
type settings struct {
	Market string `mapstructure:"market" validate:"omitempty,len=2"`
}

// NewFactory returns a catalog factory authorized with cfg's credentials.
func NewFactory(ctx context.Context, cfg config.SpotifyConfig) catalog.Factory {
	return func(raw map[string]any) (catalog.Catalog, error) {
		var s settings
		if err := catalog.DecodeSettings(raw, &s); err != nil {
			return nil, err
		}
		market := cfg.Market
		if s.Market != "" {
			market = s.Market
		}

		client, err := New(ctx, Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RefreshToken: cfg.RefreshToken,
			Market:       market,
		})
		if err != nil {
			return nil, err
		}
		return NewCatalog(client), nil
	}
}
