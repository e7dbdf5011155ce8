package server

import (
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/clocklear/pirelayconsole/auth"
)

// CallbackHandler completes the authorization code handshake
// (GET /callbacks/auth0). The identity provider lands here with either a
// code to exchange or an error pair to display.
func (s *Server) CallbackHandler() http.HandlerFunc {
	errTmpl := mustParsePage("callback_error.html")

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if code := q.Get("error"); code != "" {
			provErr := &auth.ProviderError{
				Code:        code,
				Description: q.Get("error_description"),
			}
			zlog.Warn().Str("error", code).Msg("Identity provider rejected the login")
			data := s.page(r, s.sessions.Current())
			data.ProviderError = provErr
			s.render(w, errTmpl, data)
			return
		}

		code := q.Get("code")
		if code == "" {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		result, err := s.authenticator.Exchange(r.Context(), code)
		if err != nil {
			zlog.Err(err).Msg("Code exchange failed")
			data := s.page(r, s.sessions.Current())
			data.Message = "Signing in failed, please try again."
			s.render(w, errTmpl, data)
			return
		}

		if err := s.sessions.ExchangeSucceeded(result.AccessToken, result.Profile); err != nil {
			zlog.Err(err).Msg("Failed to persist session")
		}
		if err := s.sessions.PermissionsReceived(s.authenticator.Permissions(r.Context(), result.AccessToken)); err != nil {
			zlog.Err(err).Msg("Failed to persist permissions")
		}
		s.refresher.Start()

		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}
