package server

import (
	"net/http"
	"strconv"

	zlog "github.com/rs/zerolog/log"

	"github.com/clocklear/pirelayconsole/internal/errors"
	"github.com/clocklear/pirelayconsole/relayapi"
)

// SchedulesHandler renders the schedule editor (GET /schedules).
func (s *Server) SchedulesHandler() http.HandlerFunc {
	tmpl := mustParsePage("schedules.html")

	return func(w http.ResponseWriter, r *http.Request) {
		data := s.page(r, s.sessions.Current())
		data.Schedules = s.fetchSchedules(r)
		s.render(w, tmpl, data)
	}
}

// SaveScheduleHandler creates or updates a schedule (POST /schedules/save).
// A submission that fails local validation re-renders the editor with the
// form values preserved so the operator can correct them.
func (s *Server) SaveScheduleHandler() http.HandlerFunc {
	tmpl := mustParsePage("schedules.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		relay, _ := strconv.Atoi(r.FormValue("relay"))
		schedule := relayapi.Schedule{
			ID:         r.FormValue("id"),
			Relay:      relay,
			Expression: r.FormValue("expression"),
			Action:     r.FormValue("action"),
		}

		if err := s.api.SaveSchedule(r.Context(), schedule); err != nil {
			if errors.Is(err, errors.ErrBadRequest) {
				s.notifier.HTTPStatus(http.StatusBadRequest)
			} else {
				zlog.Warn().Err(err).Msg("Failed to save schedule")
			}
			data := s.page(r, s.sessions.Current())
			data.Schedules = s.fetchSchedules(r)
			data.EditedSchedule = schedule
			s.render(w, tmpl, data)
			return
		}

		http.Redirect(w, r, RouteSchedules, http.StatusSeeOther)
	}
}

// RemoveScheduleHandler deletes a schedule (POST /schedules/{id}/remove).
func (s *Server) RemoveScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.api.RemoveSchedule(r.Context(), id); err != nil {
			zlog.Warn().Err(err).Str("schedule", id).Msg("Failed to remove schedule")
		}
		http.Redirect(w, r, RouteSchedules, http.StatusSeeOther)
	}
}

func (s *Server) fetchSchedules(r *http.Request) []relayapi.Schedule {
	schedules, err := s.api.Schedules(r.Context())
	if err != nil {
		zlog.Warn().Err(err).Msg("Failed to fetch schedules")
		return nil
	}
	return schedules
}
