package server

import (
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/clocklear/pirelayconsole/session"
	"github.com/clocklear/pirelayconsole/token"
)

// Outcome is the route guard's decision for a navigation request.
type Outcome int

const (
	OutcomeRender Outcome = iota
	OutcomeRedirectToLogin
	OutcomeAccessDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRender:
		return "render"
	case OutcomeRedirectToLogin:
		return "redirect-to-login"
	default:
		return "access-denied"
	}
}

// Evaluate maps (session, path) to a navigation outcome. The order
// matters: the callback must always render (it is how exchange happens),
// and an invalid session must surface the denial rather than silently
// fall back to looking like a fresh anonymous visitor.
func Evaluate(sess session.Session, path string) Outcome {
	if path == RouteCallback {
		return OutcomeRender
	}
	if sess.IsInvalid {
		return OutcomeAccessDenied
	}
	if !sess.IsAuthenticated && path != RouteLogin && path != RouteLogout {
		return OutcomeRedirectToLogin
	}
	return OutcomeRender
}

// judgedSession re-validates token freshness before the guard decides;
// an expired token flips the session to Invalid ahead of any policy step.
func (s *Server) judgedSession() session.Session {
	sess := s.sessions.Current()
	if sess.IsAuthenticated && !sess.IsInvalid &&
		s.classifier.Classify(sess.AccessToken) == token.StatusExpired {
		if err := s.sessions.MarkInvalid(); err != nil {
			zlog.Warn().Err(err).Msg("failed to mark expired session invalid")
		}
		s.refresher.Stop()
		sess = s.sessions.Current()
	}
	return sess
}

// RequireSession is the middleware form of the route guard, applied to
// every view route.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess := s.judgedSession()
			switch Evaluate(sess, r.URL.Path) {
			case OutcomeRedirectToLogin:
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			case OutcomeAccessDenied:
				s.renderAccessDenied(w, sess)
			default:
				if sess.IsAuthenticated && !sess.IsInvalid {
					s.refresher.Start()
				}
				next(w, r)
			}
		}
	}
}
