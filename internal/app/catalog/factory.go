package catalog

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunedeck/internal/infra/config"
)

// Factory creates a catalog from per-source settings.
type Factory func(settings map[string]any) (Catalog, error)

// FixtureFactory creates the demo catalog. It takes no settings.
func FixtureFactory(settings map[string]any) (Catalog, error) {
	m, _, err := Fixture("fixture")
	if err != nil {
		return nil, err
	}
	return m, nil
}

// NewChainFromConfig creates a source chain from configuration.
// factories maps a source type to its constructor.
func NewChainFromConfig(cfg config.CatalogConfig, factories map[string]Factory) (*Chain, error) {
	if len(cfg.Sources) == 0 {
		return nil, errors.New("no catalog sources configured")
	}

	var sources []Source
	for i, scfg := range cfg.Sources {
		zlog.Debug().Msgf("creating catalog source: index=%d type=%s settings=%+v", i+1, scfg.Type, scfg.Settings)

		factory, ok := factories[scfg.Type]
		if !ok {
			return nil, errors.Newf("unsupported source type: %s (source index %d)", scfg.Type, i)
		}

		c, err := factory(scfg.Settings)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create source (index %d, type %s)", i, scfg.Type)
		}

		sources = append(sources, Source{
			Catalog:     c,
			DisplayName: scfg.DisplayName,
		})

		zlog.Info().Msgf("registered catalog source: index=%d type=%s display_name=%s", i+1, scfg.Type, scfg.DisplayName)
	}

	return NewChain(sources), nil
}

// DecodeSettings decodes source settings into out, applies `default` tags
// and validates `validate` tags. out must be a pointer to a struct.
func DecodeSettings(settings map[string]any, out any) error {
	if err := mapstructure.Decode(settings, out); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(out); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
