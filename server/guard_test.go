package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clocklear/pirelayconsole/session"
)

func TestEvaluate(t *testing.T) {
	anonymous := session.Empty()
	authenticated := session.Session{AccessToken: "tok", IsAuthenticated: true}
	invalid := session.Session{AccessToken: "tok", IsAuthenticated: true, IsInvalid: true}

	tests := []struct {
		name string
		sess session.Session
		path string
		want Outcome
	}{
		{"anonymous view redirects to login", anonymous, RouteIndex, OutcomeRedirectToLogin},
		{"anonymous schedules redirects to login", anonymous, RouteSchedules, OutcomeRedirectToLogin},
		{"anonymous login renders", anonymous, RouteLogin, OutcomeRender},
		{"anonymous logout renders", anonymous, RouteLogout, OutcomeRender},
		{"anonymous callback renders", anonymous, RouteCallback, OutcomeRender},
		{"authenticated view renders", authenticated, RouteIndex, OutcomeRender},
		{"authenticated login renders", authenticated, RouteLogin, OutcomeRender},
		{"invalid view is denied", invalid, RouteIndex, OutcomeAccessDenied},
		{"invalid login is denied", invalid, RouteLogin, OutcomeAccessDenied},
		{"invalid callback still renders", invalid, RouteCallback, OutcomeRender},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Evaluate(tc.sess, tc.path))
		})
	}
}

// An invalid session must never be mistaken for an anonymous one: denial
// wins over the login redirect regardless of the other flags.
func TestEvaluateInvalidPrecedence(t *testing.T) {
	for _, authed := range []bool{true, false} {
		sess := session.Session{IsAuthenticated: authed, IsInvalid: true}
		require.Equal(t, OutcomeAccessDenied, Evaluate(sess, RouteIndex))
		require.Equal(t, OutcomeAccessDenied, Evaluate(sess, RouteLogin))
	}
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "render", OutcomeRender.String())
	require.Equal(t, "redirect-to-login", OutcomeRedirectToLogin.String())
	require.Equal(t, "access-denied", OutcomeAccessDenied.String())
}
