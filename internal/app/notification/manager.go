// Package notification fans playback notifications out to subscribers.
package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
)

const (
	// DefaultSendTimeout bounds a single send to one subscriber.
	DefaultSendTimeout = 500 * time.Millisecond
	// MaxMisses is the number of consecutive timed-out sends after which a
	// subscriber is dropped.
	MaxMisses = 3
)

// Stream represents a notification stream for a subscriber.
type Stream interface {
	Send(*playerv1.Notification) error
}

type subscription struct {
	id     string
	stream Stream
	busy   atomic.Int32 // Sends in flight
	misses atomic.Int32 // Consecutive timeouts
}

// Manager manages notification subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	sequenceNo    atomic.Uint64
	sendTimeout   time.Duration
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		subscriptions: make(map[string]*subscription),
		sendTimeout:   DefaultSendTimeout,
	}
}

// SetSendTimeout overrides the per-subscriber send timeout.
func (m *Manager) SetSendTimeout(d time.Duration) {
	if d > 0 {
		m.sendTimeout = d
	}
}

// Subscribe adds a new subscription and returns the subscription ID.
func (m *Manager) Subscribe(stream Stream) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions[id] = &subscription{id: id, stream: stream}
	zlog.Debug().Msgf("notification: subscribed: id=%s total=%d", id, len(m.subscriptions))
	return id
}

// NextSequenceNo returns the next sequence number.
func (m *Manager) NextSequenceNo() uint64 {
	return m.sequenceNo.Add(1)
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscriptions, subscriptionID)
}

// Broadcast stamps the notification with the next sequence number and sends
// it to all subscribers in parallel, returning once every send finished or
// timed out.
//
// A subscriber whose send fails is dropped, as is one that times out
// MaxMisses times in a row. Position ticks are not queued behind a send
// that is still in flight; the next tick carries the full snapshot.
func (m *Manager) Broadcast(notification *playerv1.Notification) {
	notification.SequenceNo = m.NextSequenceNo()
	tick := notification.Type == playerv1.NotificationTypePositionChanged

	m.mu.RLock()
	subs := make([]*subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		if tick && sub.busy.Load() > 0 {
			zlog.Debug().Msgf("notification: skipping tick for busy subscriber %s (seq=%d)", sub.id, notification.SequenceNo)
			continue
		}
		wg.Add(1)
		go func(s *subscription) {
			defer wg.Done()
			m.deliver(s, notification)
		}(sub)
	}
	wg.Wait()
}

// deliver sends to one subscriber, bounded by the send timeout.
func (m *Manager) deliver(s *subscription, notification *playerv1.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), m.sendTimeout)
	defer cancel()

	s.busy.Add(1)
	done := make(chan error, 1)
	go func() {
		defer s.busy.Add(-1)
		done <- s.stream.Send(notification)
	}()

	select {
	case err := <-done:
		if err != nil {
			zlog.Debug().Msgf("notification: dropping subscriber %s: %v", s.id, err)
			m.Unsubscribe(s.id)
			return
		}
		s.misses.Store(0)
	case <-ctx.Done():
		misses := s.misses.Add(1)
		zlog.Warn().Msgf("notification: send to %s timed out (seq=%d misses=%d)", s.id, notification.SequenceNo, misses)
		if misses >= MaxMisses {
			m.Unsubscribe(s.id)
		}
	}
}

// Send sends a notification to a specific subscriber without stamping a
// sequence number. Unknown subscribers are ignored.
func (m *Manager) Send(subscriptionID string, notification *playerv1.Notification) error {
	m.mu.RLock()
	sub, ok := m.subscriptions[subscriptionID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return sub.stream.Send(notification)
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close removes all subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make(map[string]*subscription)
}
