package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileRepo stores the Session as a single namespaced JSON record under
// the data folder, keyed by the application identifier.
type FileRepo struct {
	path string
}

func NewFileRepo(folder, key string) (*FileRepo, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, fmt.Errorf("[FileRepo New] failed to create data folder: %w", err)
	}
	return &FileRepo{path: filepath.Join(folder, key+".json")}, nil
}

func (r *FileRepo) Persist(s Session) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("[FileRepo Persist] marshal: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o600); err != nil {
		return fmt.Errorf("[FileRepo Persist] write %s: %w", r.path, err)
	}
	return nil
}

// Load is partial-tolerant: a missing or corrupt record yields the empty
// default so a bad persisted state can never lock the operator out.
func (r *FileRepo) Load() (Session, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return Empty(), nil
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Empty(), nil
	}
	return s, nil
}

func (r *FileRepo) Clear() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("[FileRepo Clear] remove %s: %w", r.path, err)
	}
	return nil
}

var _ Repo = (*FileRepo)(nil)
