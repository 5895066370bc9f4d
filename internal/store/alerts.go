// Package store holds the in-memory alert table shared between the
// conversation handlers and the background watcher. Alerts do not survive a
// process restart.
package store

import (
	"sort"
	"sync"

	"stock-sentry/internal/domain"
)

// Entry pairs an alert with the user that owns it.
type Entry struct {
	UserID int64
	Alert  domain.Alert
}

// AlertStore maps a user to their single active alert. Put is an atomic
// replace-by-key; Delete is conditioned on the key still being present. If a
// user re-registers between a watcher's snapshot and its delete, the newer
// alert is the one removed; acceptable with one alert per user.
type AlertStore struct {
	mu     sync.RWMutex
	alerts map[int64]domain.Alert
}

func NewAlertStore() *AlertStore {
	return &AlertStore{
		alerts: make(map[int64]domain.Alert),
	}
}

// Put registers alert for userID, silently replacing any previous alert.
func (s *AlertStore) Put(userID int64, alert domain.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[userID] = alert
}

func (s *AlertStore) Get(userID int64) (domain.Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alert, ok := s.alerts[userID]
	return alert, ok
}

// Delete removes the user's alert and reports whether one was present.
func (s *AlertStore) Delete(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[userID]; !ok {
		return false
	}
	delete(s.alerts, userID)
	return true
}

func (s *AlertStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}

// Snapshot returns a point-in-time copy of every entry, ordered by user ID.
// The watcher iterates the copy so no lock is held across cycle I/O.
func (s *AlertStore) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.alerts))
	for userID, alert := range s.alerts {
		entries = append(entries, Entry{UserID: userID, Alert: alert})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
	return entries
}
