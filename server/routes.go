package server

import (
	"net/http"
	"strings"
)

func (s *Server) initRoutes() {
	guarded := s.HTMLMiddleware(s.RequireSession())

	// Views (session required)
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteSchedules, ChainMiddleware(s.SchedulesHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteActivity, ChainMiddleware(s.ActivityHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteAPIKeys, ChainMiddleware(s.APIKeysHandler(), guarded...))

	// Actions (session required)
	s.RegisterRouteHandler("POST "+RouteToggleRelay, ChainMiddleware(s.ToggleRelayHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteRenameRelay, ChainMiddleware(s.RenameRelayHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteSaveSchedule, ChainMiddleware(s.SaveScheduleHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteRemoveSchedule, ChainMiddleware(s.RemoveScheduleHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteCreateAPIKey, ChainMiddleware(s.CreateAPIKeyHandler(), guarded...))
	s.RegisterRouteHandler("POST "+RouteRemoveAPIKey, ChainMiddleware(s.RemoveAPIKeyHandler(), guarded...))

	// AUTH
	// Login is guarded so an invalidated session sees the denial page;
	// logout is deliberately unguarded, it is the only exit from that page.
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), guarded...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), guarded...))

	// Operational
	s.RegisterRouteHandler("GET "+RouteMetrics, s.MetricsHandler())

	// Static assets
	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
