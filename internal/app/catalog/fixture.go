package catalog

import (
	_ "embed"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/osa030/tunedeck/internal/app/timefmt"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/domain/track"
)

//go:embed fixture.yaml
var fixtureYAML []byte

// Seed is the initial library state shipped with the fixture catalog.
type Seed struct {
	Saved     []string `yaml:"saved"`
	Following []string `yaml:"following"`
}

type fixtureTrack struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Album    string `yaml:"album"`
	Duration string `yaml:"duration"`
	Artwork  string `yaml:"artwork"`
}

type fixtureCollection struct {
	ID          string              `yaml:"id"`
	Kind        collection.Kind     `yaml:"kind"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Creator     string              `yaml:"creator"`
	Artwork     string              `yaml:"artwork"`
	Bio         string              `yaml:"bio"`
	Listeners   int                 `yaml:"listeners"`
	Tracks      []fixtureTrack      `yaml:"tracks"`
	Children    []fixtureCollection `yaml:"children"`
}

type fixtureDocument struct {
	Tracks      []fixtureTrack      `yaml:"tracks"`
	Collections []fixtureCollection `yaml:"collections"`
	Unlisted    []string            `yaml:"unlisted"`
	Library     Seed                `yaml:"library"`
}

// Fixture returns the demo catalog and its library seed.
func Fixture(name string) (*Memory, Seed, error) {
	return ParseFixture(name, fixtureYAML)
}

// ParseFixture builds a memory catalog from a fixture document.
func ParseFixture(name string, data []byte) (*Memory, Seed, error) {
	var doc fixtureDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Seed{}, errors.Wrap(err, "failed to parse fixture")
	}

	var content Content
	for _, ft := range doc.Tracks {
		t, err := ft.toTrack()
		if err != nil {
			return nil, Seed{}, err
		}
		content.Tracks = append(content.Tracks, t)
	}
	for _, fc := range doc.Collections {
		c, err := fc.toCollection()
		if err != nil {
			return nil, Seed{}, err
		}
		content.Collections = append(content.Collections, c)
	}
	content.Unlisted = doc.Unlisted

	return NewMemory(name, content), doc.Library, nil
}

func (ft fixtureTrack) toTrack() (track.Track, error) {
	seconds, err := timefmt.Parse(ft.Duration)
	if err != nil {
		return track.Track{}, errors.Wrapf(err, "track %s", ft.ID)
	}
	t := track.Track{
		ID:         ft.ID,
		Title:      ft.Title,
		Artist:     ft.Artist,
		Album:      ft.Album,
		Duration:   seconds,
		ArtworkURL: ft.Artwork,
	}
	if err := t.Validate(); err != nil {
		return track.Track{}, err
	}
	return t, nil
}

func (fc fixtureCollection) toCollection() (collection.Collection, error) {
	if fc.ID == "" {
		return collection.Collection{}, errors.New("collection id is required")
	}
	if !fc.Kind.Valid() {
		return collection.Collection{}, errors.Newf("collection %s: unknown kind %q", fc.ID, fc.Kind)
	}

	c := collection.Collection{
		ID:          fc.ID,
		Kind:        fc.Kind,
		Title:       fc.Title,
		Description: fc.Description,
		ArtworkURL:  fc.Artwork,
		Creator:     fc.Creator,
		Bio:         fc.Bio,
		Listeners:   fc.Listeners,
	}
	for _, ft := range fc.Tracks {
		t, err := ft.toTrack()
		if err != nil {
			return collection.Collection{}, errors.Wrapf(err, "collection %s", fc.ID)
		}
		c.Tracks = append(c.Tracks, t)
	}
	for _, fchild := range fc.Children {
		child, err := fchild.toCollection()
		if err != nil {
			return collection.Collection{}, err
		}
		c.Children = append(c.Children, child)
	}
	return c, nil
}
