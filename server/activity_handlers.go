package server

import (
	"net/http"

	zlog "github.com/rs/zerolog/log"
)

// ActivityHandler renders the activity log (GET /activity) from the
// refresher's snapshot, falling back to a direct fetch on a cold cache.
func (s *Server) ActivityHandler() http.HandlerFunc {
	tmpl := mustParsePage("activity.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.page(r, s.sessions.Current())

		events, ok := s.refresher.Events()
		if !ok {
			fetched, err := s.api.Events(r.Context())
			if err != nil {
				zlog.Warn().Err(err).Msg("Failed to fetch activity log")
			} else {
				events = fetched
			}
		}
		data.Events = events

		s.render(w, tmpl, data)
	}
}
