package server

import (
	"net/http"
	"strconv"

	zlog "github.com/rs/zerolog/log"
)

// IndexHandler renders the relay states page. It prefers the refresher's
// snapshot; a cold cache falls through to a direct fetch, and a failed
// fetch still renders with an empty board.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl := mustParsePage("index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.page(r, s.sessions.Current())

		relays, ok := s.refresher.Relays()
		if !ok {
			fetched, err := s.api.Relays(r.Context())
			if err != nil {
				zlog.Warn().Err(err).Msg("Failed to fetch relay states")
			} else {
				s.refresher.UpdateRelays(fetched)
				relays = fetched
			}
		}
		data.Relays = relays

		s.render(w, tmpl, data)
	}
}

// ToggleRelayHandler flips a relay (POST /relays/{relay}/toggle).
func (s *Server) ToggleRelayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		relay, err := strconv.Atoi(r.PathValue("relay"))
		if err != nil {
			http.Error(w, "Invalid relay", http.StatusBadRequest)
			return
		}

		states, err := s.api.ToggleRelay(r.Context(), relay)
		if err != nil {
			// A rejected call has already raised its notification; the
			// redirect below surfaces it on the next render.
			zlog.Warn().Err(err).Int("relay", relay).Msg("Failed to toggle relay")
		} else {
			s.refresher.UpdateRelays(states)
		}

		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// RenameRelayHandler sets a relay's display name (POST /relays/{relay}/name).
func (s *Server) RenameRelayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		relay, err := strconv.Atoi(r.PathValue("relay"))
		if err != nil {
			http.Error(w, "Invalid relay", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		if err := s.api.SetRelayName(r.Context(), relay, r.FormValue("name")); err != nil {
			zlog.Warn().Err(err).Int("relay", relay).Msg("Failed to rename relay")
		}

		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}
