package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Views
	RouteIndex     = "/"
	RouteSchedules = "/schedules"
	RouteActivity  = "/activity"
	RouteAPIKeys   = "/apikeys"

	// Auth Routes
	RouteLogin    = "/auth/login"
	RouteLogout   = "/auth/logout"
	RouteCallback = "/callbacks/auth0"

	// Actions (POST targets behind the guard)
	RouteToggleRelay    = "/relays/{relay}/toggle"
	RouteRenameRelay    = "/relays/{relay}/name"
	RouteSaveSchedule   = "/schedules/save"
	RouteRemoveSchedule = "/schedules/{id}/remove"
	RouteCreateAPIKey   = "/apikeys/create"
	RouteRemoveAPIKey   = "/apikeys/{id}/remove"

	// Operational
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
