package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/app/timefmt"
)

// Settings are the per-source options of a local catalog source.
type Settings struct {
	Root            string `mapstructure:"root" validate:"required"`
	Watch           bool   `mapstructure:"watch"`
	Concurrency     int    `mapstructure:"concurrency" default:"4" validate:"gte=1,lte=64"`
	DefaultDuration string `mapstructure:"default_duration" default:"3:00"`
	DebounceMs      int    `mapstructure:"debounce_ms" default:"500" validate:"gte=0"`
}

// NewFactory returns a catalog factory for local sources. Watching sources
// keep rescanning until ctx is done.
func NewFactory(ctx context.Context) catalog.Factory {
	return func(raw map[string]any) (catalog.Catalog, error) {
		var s Settings
		if err := catalog.DecodeSettings(raw, &s); err != nil {
			return nil, err
		}

		root, err := expandHome(s.Root)
		if err != nil {
			return nil, err
		}
		duration, err := timefmt.Parse(s.DefaultDuration)
		if err != nil {
			return nil, errors.Wrap(err, "invalid default_duration")
		}

		src, err := New(ctx, Options{
			Root:            root,
			Concurrency:     s.Concurrency,
			DefaultDuration: duration,
			Debounce:        time.Duration(s.DebounceMs) * time.Millisecond,
		})
		if err != nil {
			return nil, err
		}

		if s.Watch {
			go func() {
				if err := src.Watch(ctx); err != nil {
					zlog.Error().Msgf("localfs: %v", err)
				}
			}()
		}
		return src, nil
	}
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
