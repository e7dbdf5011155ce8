package server

import (
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/clocklear/pirelayconsole/relayapi"
)

// APIKeysHandler lists the issued API keys (GET /apikeys).
func (s *Server) APIKeysHandler() http.HandlerFunc {
	tmpl := mustParsePage("apikeys.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.page(r, s.sessions.Current())
		data.APIKeys = s.fetchAPIKeys(r)
		s.render(w, tmpl, data)
	}
}

// CreateAPIKeyHandler issues a new key (POST /apikeys/create). The secret
// is shown exactly once, on the page this handler renders.
func (s *Server) CreateAPIKeyHandler() http.HandlerFunc {
	tmpl := mustParsePage("apikeys.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		secret, err := s.api.CreateAPIKey(r.Context(), r.FormValue("desc"))
		if err != nil {
			zlog.Warn().Err(err).Msg("Failed to create API key")
			http.Redirect(w, r, RouteAPIKeys, http.StatusSeeOther)
			return
		}

		data := s.page(r, s.sessions.Current())
		data.APIKeys = s.fetchAPIKeys(r)
		data.CreatedKey = secret
		s.render(w, tmpl, data)
	}
}

// RemoveAPIKeyHandler revokes a key (POST /apikeys/{id}/remove).
func (s *Server) RemoveAPIKeyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.api.RemoveAPIKey(r.Context(), id); err != nil {
			zlog.Warn().Err(err).Str("key", id).Msg("Failed to remove API key")
		}
		http.Redirect(w, r, RouteAPIKeys, http.StatusSeeOther)
	}
}

func (s *Server) fetchAPIKeys(r *http.Request) []relayapi.APIKey {
	keys, err := s.api.APIKeys(r.Context())
	if err != nil {
		zlog.Warn().Err(err).Msg("Failed to fetch API keys")
		return nil
	}
	return keys
}
