package session

import (
	"fmt"
	"sync"
)

// Machine owns the process-wide Session. Every mutation goes through one
// of the named transitions; no other component writes session fields, and
// the persisted copy is written only as a transition side effect.
type Machine struct {
	mu   sync.RWMutex
	cur  Session
	repo Repo
}

// NewMachine rehydrates the last persisted session, or starts from the
// empty default when nothing usable was persisted.
func NewMachine(repo Repo) (*Machine, error) {
	cur, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("[Machine New] failed to load persisted session: %w", err)
	}
	return &Machine{cur: cur, repo: repo}, nil
}

// Current returns a copy of the session; callers never share the
// machine's own maps and slices.
func (m *Machine) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.clone()
}

// ExchangeSucceeded installs the token and profile obtained from the
// code exchange and moves the machine to Authenticated.
func (m *Machine) ExchangeSucceeded(accessToken string, profile map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur.AccessToken = accessToken
	m.cur.Profile = profile
	m.cur.IsAuthenticated = accessToken != ""
	m.cur.IsInvalid = false
	return m.persistLocked()
}

// PermissionsReceived records the scopes granted to the session. Not a
// state transition; the machine stays Authenticated.
func (m *Machine) PermissionsReceived(scopes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur.Permissions = scopes
	return m.persistLocked()
}

// MarkInvalid flags the session as unusable. The stale token is retained
// for display and audit, never for further authorized calls.
func (m *Machine) MarkInvalid() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur.IsInvalid = true
	return m.persistLocked()
}

// Logout resets to the empty default and clears the persisted record.
// Logging out when already logged out is a no-op.
func (m *Machine) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = Empty()
	if err := m.repo.Clear(); err != nil {
		return fmt.Errorf("[Machine Logout] failed to clear persisted session: %w", err)
	}
	return nil
}

func (m *Machine) persistLocked() error {
	if err := m.repo.Persist(m.cur); err != nil {
		return fmt.Errorf("[Machine] failed to persist session: %w", err)
	}
	return nil
}
