package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/clocklear/pirelayconsole/session"
	"github.com/clocklear/pirelayconsole/session/repofakes"
)

type testConfig struct {
	apiRoot string
}

func (c testConfig) GetPort() string            { return ":0" }
func (c testConfig) GetAppName() string         { return "pirelayconsole" }
func (c testConfig) GetDataFolder() string      { return "" }
func (c testConfig) GetEnv() string             { return "TEST" }
func (c testConfig) GetAPIRoot() string         { return c.apiRoot }
func (c testConfig) GetIdentityDomain() string  { return "" }
func (c testConfig) GetClientID() string        { return "client-id" }
func (c testConfig) GetRedirectURI() string     { return "http://localhost:3001/callbacks/auth0" }
func (c testConfig) GetAudience() string        { return "https://relays.test" }
func (c testConfig) GetLogoutReturnURI() string { return "http://localhost:3001/auth/logout" }
func (c testConfig) GetScopes() []string        { return []string{"openid", "profile", "email"} }

// fakeRelayAPI stands in for the relay backend: it issues a token on
// exchange and serves relay data to holders of that token.
type fakeRelayAPI struct {
	server *httptest.Server
	token  string

	mu           sync.Mutex
	unauthorized bool
	failExchange bool
}

func newFakeRelayAPI(t *testing.T, accessToken string) *fakeRelayAPI {
	t.Helper()
	f := &fakeRelayAPI{token: accessToken}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /oauth/exchange", func(w http.ResponseWriter, r *http.Request) {
		if f.exchangeFails() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, map[string]any{
			"accessToken": f.token,
			"idToken":     "id-token",
			"profile":     map[string]any{"name": "Pat Operator"},
		})
	})
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"permissions": []string{"read:relays", "write:relay.toggle", "write:config.schedules"},
		})
	})
	mux.HandleFunc("GET /relays", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, map[string]any{
			"relayStates": []map[string]any{{"name": "Pump", "relay": 1, "state": 1}},
		})
	})
	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, []map[string]any{{"stamp": time.Now().Format(time.RFC3339), "msg": "Relay 1 turned on"}})
	})
	mux.HandleFunc("GET /config/schedules", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, []map[string]any{})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeRelayAPI) authorized(r *http.Request) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unauthorized {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+f.token
}

func (f *fakeRelayAPI) reject() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unauthorized = true
}

func (f *fakeRelayAPI) breakExchange() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failExchange = true
}

func (f *fakeRelayAPI) exchangeFails() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failExchange
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func newTestServer(t *testing.T, api *fakeRelayAPI, repo session.Repo) *Server {
	t.Helper()
	s, err := New(testConfig{apiRoot: api.server.URL}, repo)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAnonymousVisitorIsRedirectedToLogin(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	s := newTestServer(t, api, repofakes.NewFakeSessionRepo())

	for _, path := range []string{RouteIndex, RouteSchedules, RouteActivity, RouteAPIKeys} {
		rec := get(s, path)
		require.Equal(t, http.StatusSeeOther, rec.Code, path)
		require.Equal(t, RouteLogin, rec.Header().Get("Location"), path)
	}
}

func TestLoginPageRenders(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	s := newTestServer(t, api, repofakes.NewFakeSessionRepo())

	rec := get(s, RouteLogin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Log in")
}

func TestCallbackCompletesHandshake(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	repo := repofakes.NewFakeSessionRepo()
	s := newTestServer(t, api, repo)

	rec := get(s, RouteCallback+"?code=abc&state=xyz")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, RouteIndex, rec.Header().Get("Location"))

	sess := s.sessions.Current()
	require.True(t, sess.IsAuthenticated)
	require.False(t, sess.IsInvalid)
	require.Equal(t, "Pat Operator", sess.Name())
	require.True(t, sess.HasPermission("write:relay.toggle"))

	persisted, err := repo.Load()
	require.NoError(t, err)
	require.True(t, persisted.IsAuthenticated)

	rec = get(s, RouteIndex)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Pump")
	require.Contains(t, rec.Body.String(), "Toggle")
}

func TestCallbackRendersProviderError(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	s := newTestServer(t, api, repofakes.NewFakeSessionRepo())

	rec := get(s, RouteCallback+"?error=access_denied&error_description=the_user_cancelled")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Access Denied")
	require.Contains(t, rec.Body.String(), "The User Cancelled")
	require.False(t, s.sessions.Current().IsAuthenticated)
}

func TestCallbackWithoutCodeRedirectsToLogin(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	s := newTestServer(t, api, repofakes.NewFakeSessionRepo())

	rec := get(s, RouteCallback)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, RouteLogin, rec.Header().Get("Location"))
}

func TestCallbackExchangeFailureStaysLoggedOut(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	api.breakExchange()
	s := newTestServer(t, api, repofakes.NewFakeSessionRepo())

	rec := get(s, RouteCallback+"?code=abc")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sign In Failed")
	require.False(t, s.sessions.Current().IsAuthenticated)
}

func TestRejectedTokenLocksSession(t *testing.T) {
	tok := signedToken(t, time.Now().Add(time.Hour))
	api := newFakeRelayAPI(t, tok)
	repo := repofakes.NewFakeSessionRepo()
	require.NoError(t, repo.Persist(session.Session{
		AccessToken:     tok,
		IsAuthenticated: true,
		Permissions:     []string{"read:relays"},
	}))
	s := newTestServer(t, api, repo)
	api.reject()

	// The API refuses the token mid-session; the page still renders but
	// the session is now invalid.
	rec := get(s, RouteIndex)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, s.sessions.Current().IsInvalid)

	// Every subsequent navigation lands on the denial page...
	rec = get(s, RouteSchedules)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Go Away")

	// ...including login; logout is the only way out.
	rec = get(s, RouteLogin)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = get(s, RouteLogout)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, RouteLogin, rec.Header().Get("Location"))
	require.Equal(t, 1, repo.ClearCalls)

	rec = get(s, RouteLogin)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestExpiredTokenIsDenied(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	repo := repofakes.NewFakeSessionRepo()
	require.NoError(t, repo.Persist(session.Session{
		AccessToken:     signedToken(t, time.Now().Add(-time.Hour)),
		IsAuthenticated: true,
	}))
	s := newTestServer(t, api, repo)

	rec := get(s, RouteIndex)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Access Denied")

	persisted, err := repo.Load()
	require.NoError(t, err)
	require.True(t, persisted.IsInvalid)
}

func TestStaleTokenIsNeverPresented(t *testing.T) {
	tok := signedToken(t, time.Now().Add(time.Hour))
	api := newFakeRelayAPI(t, tok)
	repo := repofakes.NewFakeSessionRepo()
	require.NoError(t, repo.Persist(session.Session{
		AccessToken:     tok,
		IsAuthenticated: true,
		IsInvalid:       true,
	}))
	s := newTestServer(t, api, repo)

	require.Empty(t, s.sessionToken())
	// The stale token itself is retained for inspection.
	require.Equal(t, tok, s.sessions.Current().AccessToken)
}

func TestStaticCSSIsServed(t *testing.T) {
	api := newFakeRelayAPI(t, signedToken(t, time.Now().Add(time.Hour)))
	s := newTestServer(t, api, repofakes.NewFakeSessionRepo())

	rec := get(s, "/css/main.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}
