package server

import (
	"net/http"

	"github.com/google/uuid"
)

// LoginPageHandler displays the login page (GET /auth/login). Visitors
// with a live session are sent straight to the console.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl := mustParsePage("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Current()
		if sess.IsAuthenticated && !sess.IsInvalid {
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}

		data := s.page(r, sess)
		data.LoginURL = s.authenticator.LoginURL(uuid.NewString())
		s.render(w, tmpl, data)
	}
}

// LogoutHandler clears the local session and returns the visitor to the
// login page. The identity provider's logout redirects back here, so this
// must work for any session state.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.Logout(); err != nil {
			logError("GET", RouteLogout, err.Error())
		}
		s.refresher.Stop()
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
