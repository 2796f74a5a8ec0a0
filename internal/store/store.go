// Package store holds the latest fetched snapshot of application and email
// records.
//
// The store is the only mutable shared state in apptrack. It is mutated
// exclusively by the tracker controller; every other component works on a
// snapshot copy, so readers never observe a half-applied update even when a
// watch loop runs refreshes on a timer goroutine.
package store

import (
	"sync"

	"github.com/tbonnaire/apptrack/internal/types"
)

// Store holds the raw, unfiltered record collections.
type Store struct {
	mu     sync.Mutex
	apps   []types.ApplicationRecord
	emails []types.EmailRecord
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// ReplaceApplications swaps in a fresh application list.
func (s *Store) ReplaceApplications(list []types.ApplicationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = cloneApps(list)
}

// ReplaceEmails swaps in a fresh email list.
func (s *Store) ReplaceEmails(list []types.EmailRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = cloneEmails(list)
}

// ReplaceAll swaps both collections in one atomic step. Refreshes use this so
// no snapshot can pair new applications with old emails.
func (s *Store) ReplaceAll(apps []types.ApplicationRecord, emails []types.EmailRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = cloneApps(apps)
	s.emails = cloneEmails(emails)
}

// PrependApplication inserts a newly created record at index 0. Most-recent-
// first is the store's raw insertion convention, not a sort.
func (s *Store) PrependApplication(rec types.ApplicationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = append([]types.ApplicationRecord{rec}, s.apps...)
}

// RemoveApplication deletes the record with the given id. Absent ids are a
// no-op — another session may have deleted the record first.
func (s *Store) RemoveApplication(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.apps {
		if a.ID == id {
			s.apps = append(s.apps[:i:i], s.apps[i+1:]...)
			return
		}
	}
}

// Snapshot returns copies of both collections. Callers own the returned
// slices; mutating them never affects the store.
func (s *Store) Snapshot() ([]types.ApplicationRecord, []types.EmailRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneApps(s.apps), cloneEmails(s.emails)
}

// Len returns the number of applications currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

func cloneApps(list []types.ApplicationRecord) []types.ApplicationRecord {
	out := make([]types.ApplicationRecord, len(list))
	copy(out, list)
	return out
}

func cloneEmails(list []types.EmailRecord) []types.EmailRecord {
	out := make([]types.EmailRecord, len(list))
	copy(out, list)
	return out
}
