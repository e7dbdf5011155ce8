// Package notify collects transient, keyed notifications for the UI.
// Pushing a key that is already pending replaces the entry, so a burst of
// identical failures collapses into a single message.
package notify

import (
	"net/http"
	"sort"
	"sync"
	"time"
)

type Intent string

const (
	IntentSuccess Intent = "success"
	IntentWarning Intent = "warning"
	IntentDanger  Intent = "danger"
)

// Well-known notification keys.
const (
	KeyBadRequest   = "bad-request"
	KeyAccessDenied = "access-denied"
)

type Notification struct {
	Key         string
	Intent      Intent
	Title       string
	Description string
	Raised      time.Time
}

type Notifier struct {
	mu      sync.Mutex
	pending map[string]Notification
	now     func() time.Time
}

func New() *Notifier {
	return &Notifier{
		pending: make(map[string]Notification),
		now:     time.Now,
	}
}

func (n *Notifier) Push(key string, intent Intent, title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending[key] = Notification{
		Key:         key,
		Intent:      intent,
		Title:       title,
		Description: description,
		Raised:      n.now(),
	}
}

// HTTPStatus raises the standard notification for a rejected API call.
// Statuses without a standard message are ignored.
func (n *Notifier) HTTPStatus(status int) {
	switch status {
	case http.StatusBadRequest:
		n.Push(KeyBadRequest, IntentWarning, "Bad Request",
			"Your submission was either invalid or incomplete, please correct the form and try again.")
	case http.StatusUnauthorized, http.StatusForbidden:
		n.Push(KeyAccessDenied, IntentDanger, "Access Denied",
			"You are not authorized to access this resource.")
	}
}

// Drain returns the pending notifications in the order they were raised
// and clears them; each notification is shown once.
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.pending) == 0 {
		return nil
	}
	out := make([]Notification, 0, len(n.pending))
	for _, v := range n.pending {
		out = append(out, v)
	}
	n.pending = make(map[string]Notification)
	sort.Slice(out, func(i, j int) bool { return out[i].Raised.Before(out[j].Raised) })
	return out
}
