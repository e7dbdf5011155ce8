package session

// Repo persists the Session across process restarts.
type Repo interface {
	// Persist durably saves the session.
	Persist(Session) error
	// Load returns the last persisted session, or the empty default when
	// nothing usable was persisted. A corrupt record is not an error.
	Load() (Session, error)
	// Clear removes the persisted record.
	Clear() error
}
