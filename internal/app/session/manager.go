// Package session provides the process-wide player session.
package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/app/library"
	"github.com/osa030/tunedeck/internal/app/notification"
	"github.com/osa030/tunedeck/internal/app/playback"
	"github.com/osa030/tunedeck/internal/app/view"
	"github.com/osa030/tunedeck/internal/domain/collection"
	"github.com/osa030/tunedeck/internal/infra/config"
)

var (
	ErrAlreadyStarted = errors.New("session already started")
	ErrClosed         = errors.New("session is closed")
)

// Manager owns the playback store for the lifetime of the process and wires
// the catalog, library, page builder and notification fan-out around it.
type Manager struct {
	id string

	catalog      catalog.Catalog
	library      *library.Library
	controller   *playback.Controller
	notification *notification.Manager
	builder      *view.Builder

	mu      sync.Mutex
	started bool
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
}

// NewManager creates a session over cat. enricher may be nil.
func NewManager(cfg *config.Config, cat catalog.Catalog, lib *library.Library, enricher view.Enricher) (*Manager, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if lib == nil {
		lib = library.New(nil, nil)
	}

	muteRestore, err := playback.ParseMuteRestore(cfg.Playback.MuteRestore)
	if err != nil {
		return nil, errors.Wrap(err, "invalid playback config")
	}

	store := playback.NewStore(cfg.Playback.DefaultVolume)
	controller := playback.NewController(store, playback.Config{
		DefaultVolume: cfg.Playback.DefaultVolume,
		MuteRestore:   muteRestore,
		TickInterval:  cfg.Playback.TickInterval(),
		EventBuffer:   cfg.Playback.EventBuffer,
	})

	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		id:           uuid.New().String(),
		catalog:      cat,
		library:      lib,
		controller:   controller,
		notification: notification.NewManager(),
		builder: view.NewBuilder(cat, lib, view.Options{
			SearchLimit: cfg.Catalog.SearchLimit,
			ChartLimit:  cfg.LastFm.ChartLimit,
			Enricher:    enricher,
		}),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	zlog.Debug().Msgf("session: created: id=%s mute_restore=%s tick=%v", m.id, muteRestore, cfg.Playback.TickInterval())
	return m, nil
}

// ID returns the session ID.
func (m *Manager) ID() string {
	return m.id
}

// Start runs the position ticker and the event loop until ctx is done or
// Close is called.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.started {
		return ErrAlreadyStarted
	}
	m.started = true

	go func() {
		select {
		case <-ctx.Done():
			m.Close()
		case <-m.ctx.Done():
		}
	}()

	m.wg.Add(2)
	go func() {
		defer m.wg.Done()
		m.controller.Run(m.ctx)
	}()
	go func() {
		defer m.wg.Done()
		m.eventLoop()
	}()

	zlog.Info().Msgf("session started: id=%s", m.id)
	return nil
}

// Close stops the background loops and drops all subscribers. It is safe to
// call more than once.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.controller.Close()
	m.wg.Wait()
	m.notification.Close()
	close(m.done)
	zlog.Info().Msgf("session closed: id=%s", m.id)
}

// Done is closed once the session has shut down.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Notifications returns the notification manager.
func (m *Manager) Notifications() *notification.Manager {
	return m.notification
}

// Controller returns the transport controller.
func (m *Manager) Controller() *playback.Controller {
	return m.controller
}

// Builder returns the page builder.
func (m *Manager) Builder() *view.Builder {
	return m.builder
}

// Library returns the follow/saved state.
func (m *Manager) Library() *library.Library {
	return m.library
}

// Catalog returns the session's catalog.
func (m *Manager) Catalog() catalog.Catalog {
	return m.catalog
}

// Snapshot returns the current playback snapshot.
func (m *Manager) Snapshot() playback.Snapshot {
	return m.controller.Snapshot()
}

// PlayTrack plays the track. With a contextID, the whole collection is
// queued and playback starts at the track; the track must belong to it.
func (m *Manager) PlayTrack(ctx context.Context, trackID, contextID string) (bool, error) {
	if contextID == "" {
		t, err := catalog.GetTrack(ctx, m.catalog, trackID)
		if err != nil {
			return false, err
		}
		return m.controller.Load(t), nil
	}

	c, err := catalog.GetCollection(ctx, m.catalog, contextID)
	if err != nil {
		return false, err
	}
	start := c.IndexOf(trackID)
	if start < 0 {
		return false, errors.Wrapf(catalog.ErrNotFound, "track %s in %s", trackID, contextID)
	}

	zlog.Debug().Msgf("session: play track: id=%s context=%s index=%d", trackID, contextID, start)
	return m.controller.LoadQueue(c.TrackPointers(), start, c.ID), nil
}

// PlayCollection queues the collection's tracks from the first one. An
// empty collection leaves the player untouched.
func (m *Manager) PlayCollection(ctx context.Context, id string) (bool, error) {
	c, err := catalog.GetCollection(ctx, m.catalog, id)
	if err != nil {
		return false, err
	}
	if len(c.Tracks) == 0 {
		zlog.Debug().Msgf("session: collection %s has no tracks", id)
		return false, nil
	}
	return m.controller.LoadQueue(c.TrackPointers(), 0, c.ID), nil
}

// Enqueue appends the track to the play order.
func (m *Manager) Enqueue(ctx context.Context, trackID string) (bool, error) {
	t, err := catalog.GetTrack(ctx, m.catalog, trackID)
	if err != nil {
		return false, err
	}
	return m.controller.Enqueue(t), nil
}

// Follow follows or unfollows an artist and returns the resulting state.
func (m *Manager) Follow(ctx context.Context, artistID string, follow bool) (bool, error) {
	c, err := catalog.GetCollection(ctx, m.catalog, artistID)
	if err != nil {
		return false, err
	}
	if c.Kind != collection.KindArtist {
		return false, errors.Wrapf(catalog.ErrNotFound, "%s is not an artist", artistID)
	}
	if follow {
		m.library.Follow(artistID)
	} else {
		m.library.Unfollow(artistID)
	}
	return m.library.IsFollowing(artistID), nil
}

// Save saves or removes a track or collection and returns the resulting
// state.
func (m *Manager) Save(ctx context.Context, id string, save bool) (bool, error) {
	if _, err := m.catalog.Get(ctx, id); err != nil {
		return false, err
	}
	if save {
		m.library.Save(id)
	} else {
		m.library.Unsave(id)
	}
	return m.library.IsSaved(id), nil
}

// eventLoop converts controller events into notifications.
func (m *Manager) eventLoop() {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error().Msgf("session event loop panicked: %v", r)
			select {
			case <-m.ctx.Done():
				return
			default:
			}
			zlog.Info().Msg("restarting session event loop")
			m.wg.Add(1)
			go func() {
				defer m.wg.Done()
				m.eventLoop()
			}()
		}
	}()

	events := m.controller.Events()
	for {
		select {
		case <-m.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			m.handleEvent(event)
		}
	}
}

func (m *Manager) handleEvent(event playback.Event) {
	switch event.Type {
	case playback.EventPositionChanged:
		// per tick
	case playback.EventTrackChanged:
		if t := event.Snapshot.CurrentTrack; t != nil {
			zlog.Info().Msgf("now playing: id=%s title=%s artist=%s", t.ID, t.Title, t.Artist)
		}
	default:
		zlog.Debug().Msgf("playback event: type=%s revision=%d", event.Type, event.Snapshot.Revision)
	}

	m.notification.Broadcast(playerv1.NewNotification(event.Type.String(), event.Snapshot))
}
