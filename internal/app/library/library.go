// Package library tracks the listener's followed artists and saved items.
// State lives in memory only.
package library

import (
	"slices"
	"sync"
)

// Library holds followed artist IDs and saved record IDs in insertion order.
type Library struct {
	mu        sync.RWMutex
	following []string
	saved     []string
}

// New creates a library seeded with the given IDs.
func New(saved, following []string) *Library {
	l := &Library{}
	for _, id := range saved {
		l.saved = addUnique(l.saved, id)
	}
	for _, id := range following {
		l.following = addUnique(l.following, id)
	}
	return l
}

// Follow adds an artist. It returns false if already followed.
func (l *Library) Follow(artistID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if artistID == "" || slices.Contains(l.following, artistID) {
		return false
	}
	l.following = append(l.following, artistID)
	return true
}

// Unfollow removes an artist. It returns false if not followed.
func (l *Library) Unfollow(artistID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var removed bool
	l.following, removed = remove(l.following, artistID)
	return removed
}

// IsFollowing reports whether the artist is followed.
func (l *Library) IsFollowing(artistID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Contains(l.following, artistID)
}

// Following returns the followed artist IDs.
func (l *Library) Following() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.following...)
}

// Save adds a track or collection. It returns false if already saved.
func (l *Library) Save(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == "" || slices.Contains(l.saved, id) {
		return false
	}
	l.saved = append(l.saved, id)
	return true
}

// Unsave removes a saved item. It returns false if not saved.
func (l *Library) Unsave(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	var removed bool
	l.saved, removed = remove(l.saved, id)
	return removed
}

// IsSaved reports whether the item is saved.
func (l *Library) IsSaved(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Contains(l.saved, id)
}

// Saved returns the saved IDs.
func (l *Library) Saved() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.saved...)
}

func addUnique(ids []string, id string) []string {
	if id == "" || slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) ([]string, bool) {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids, false
	}
	return slices.Delete(ids, i, i+1), true
}
