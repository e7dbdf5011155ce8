package repofakes

import (
	"sync"

	"github.com/clocklear/pirelayconsole/session"
)

// FakeSessionRepo is an in-memory Repo for tests.
type FakeSessionRepo struct {
	mu     sync.Mutex
	stored session.Session
	has    bool

	// Optional error injection
	PersistErr error
	ClearErr   error

	PersistCalls int
	ClearCalls   int
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

func (r *FakeSessionRepo) Persist(s session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PersistCalls++
	if r.PersistErr != nil {
		return r.PersistErr
	}
	r.stored = s
	r.has = true
	return nil
}

func (r *FakeSessionRepo) Load() (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.has {
		return session.Empty(), nil
	}
	return r.stored, nil
}

func (r *FakeSessionRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ClearCalls++
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.stored = session.Empty()
	r.has = false
	return nil
}

var _ session.Repo = (*FakeSessionRepo)(nil)
