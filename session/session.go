// Package session holds the console's one Session and the state machine
// that owns it.
package session

import (
	"slices"

	"github.com/clocklear/pirelayconsole/internal/utils"
)

// Session is the client-held record of the operator's authentication and
// authorization state. It is the single source of truth for routing and
// request decisions.
type Session struct {
	AccessToken     string         `json:"accessToken"`
	Profile         map[string]any `json:"profile,omitempty"`
	Permissions     []string       `json:"permissions,omitempty"`
	IsAuthenticated bool           `json:"isAuthenticated"`

	// IsInvalid is distinct from !IsAuthenticated: the operator logged in
	// but the token was judged expired or rejected, and the UI must show
	// the denial instead of a fresh login.
	IsInvalid bool `json:"isInvalid"`
}

// Empty is the initial, logged-out Session.
func Empty() Session {
	return Session{}
}

func (s Session) HasPermission(scope string) bool {
	return slices.Contains(s.Permissions, scope)
}

// Profile accessors tolerate an absent or partial identity-provider payload.

func (s Session) Name() string {
	return utils.MapString(s.Profile, "name")
}

func (s Session) Email() string {
	return utils.MapString(s.Profile, "email")
}

func (s Session) Picture() string {
	return utils.MapString(s.Profile, "picture")
}

func (s Session) clone() Session {
	c := s
	if s.Profile != nil {
		c.Profile = make(map[string]any, len(s.Profile))
		for k, v := range s.Profile {
			c.Profile[k] = v
		}
	}
	if s.Permissions != nil {
		c.Permissions = slices.Clone(s.Permissions)
	}
	return c
}
