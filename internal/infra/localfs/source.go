package localfs

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/domain/collection"
)

// Options configures a Source.
type Options struct {
	Root            string
	Concurrency     int           // Parallel tag readers
	DefaultDuration int           // Seconds, for tracks no playlist gives a length
	Debounce        time.Duration // Quiet period before a rescan
}

// Source is a catalog over a local music directory. It serves from an
// in-memory index that Rescan rebuilds.
type Source struct {
	scanner  scanner
	memory   *catalog.Memory
	debounce time.Duration

	mu      sync.Mutex
	dirs    []string
	scanned time.Time
}

var _ catalog.Catalog = (*Source)(nil)

// New creates a source and performs the initial scan.
func New(ctx context.Context, opts Options) (*Source, error) {
	if opts.Root == "" {
		return nil, errors.New("root is required")
	}
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, errors.Wrap(err, "invalid music root")
	}
	if !info.IsDir() {
		return nil, errors.Newf("music root %s is not a directory", opts.Root)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}

	s := &Source{
		scanner: scanner{
			root:            opts.Root,
			concurrency:     opts.Concurrency,
			defaultDuration: opts.DefaultDuration,
		},
		memory:   catalog.NewMemory("local", catalog.Content{}),
		debounce: opts.Debounce,
	}
	if err := s.Rescan(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Rescan rebuilds the index from disk.
func (s *Source) Rescan(ctx context.Context) error {
	res, err := s.scanner.scan(ctx)
	if err != nil {
		return err
	}
	s.memory.Replace(res.content)

	s.mu.Lock()
	s.dirs = res.dirs
	s.scanned = time.Now()
	s.mu.Unlock()
	return nil
}

// Root returns the scanned directory.
func (s *Source) Root() string {
	return s.scanner.root
}

// LastScan returns when the index was last rebuilt.
func (s *Source) LastScan() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanned
}

// Get implements catalog.Catalog.
func (s *Source) Get(ctx context.Context, id string) (catalog.Record, error) {
	if !isLocalID(id) {
		return catalog.Record{}, catalog.ErrNotFound
	}
	return s.memory.Get(ctx, id)
}

// Search implements catalog.Catalog.
func (s *Source) Search(ctx context.Context, query string, limit int) (catalog.Results, error) {
	return s.memory.Search(ctx, query, limit)
}

// List implements catalog.Catalog. Artists are listed too.
func (s *Source) List(ctx context.Context, kind collection.Kind) ([]collection.Collection, error) {
	return s.memory.List(ctx, kind)
}

// Watch rescans after filesystem changes until ctx is done.
func (s *Source) Watch(ctx context.Context) error {
	s.mu.Lock()
	dirs := append([]string(nil), s.dirs...)
	s.mu.Unlock()

	w, err := newWatcher(dirs)
	if err != nil {
		return errors.Wrap(err, "failed to watch music directory")
	}
	defer w.Close()
	zlog.Info().Msgf("localfs: watching %s (%d directories)", s.scanner.root, len(dirs))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			zlog.Debug().Msgf("localfs: change: %s", name)
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			zlog.Warn().Msgf("localfs: watcher error: %v", err)

		case <-fire:
			fire = nil
			if err := s.Rescan(ctx); err != nil {
				zlog.Warn().Msgf("localfs: rescan failed: %v", err)
				continue
			}
			s.mu.Lock()
			dirs := append([]string(nil), s.dirs...)
			s.mu.Unlock()
			w.AddAll(dirs)
		}
	}
}
