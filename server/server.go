// Package server is the web console: guarded server-rendered views over
// the relay API, plus the auth handshake routes that produce the session
// those views depend on.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	zlog "github.com/rs/zerolog/log"

	"github.com/clocklear/pirelayconsole/auth"
	"github.com/clocklear/pirelayconsole/internal/config"
	"github.com/clocklear/pirelayconsole/notify"
	"github.com/clocklear/pirelayconsole/relayapi"
	"github.com/clocklear/pirelayconsole/session"
	"github.com/clocklear/pirelayconsole/token"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config

	sessions      *session.Machine
	authenticator *auth.Authenticator
	api           *relayapi.Client
	notifier      *notify.Notifier
	classifier    token.Classifier
	refresher     *Refresher
}

func New(cfg config.Config, sessionRepo session.Repo) (*Server, error) {
	machine, err := session.NewMachine(sessionRepo)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session machine: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		sessions: machine,
		notifier: notify.New(),
	}
	s.env = cfg.GetEnv()

	s.authenticator = auth.New(context.Background(), auth.Config{
		APIRoot:         cfg.GetAPIRoot(),
		IdentityDomain:  cfg.GetIdentityDomain(),
		ClientID:        cfg.GetClientID(),
		RedirectURI:     cfg.GetRedirectURI(),
		Audience:        cfg.GetAudience(),
		LogoutReturnURI: cfg.GetLogoutReturnURI(),
		Scopes:          cfg.GetScopes(),
	})

	s.api = relayapi.New(cfg.GetAPIRoot(), relayapi.Options{
		Token:          s.sessionToken,
		Notifier:       s.notifier,
		OnUnauthorized: s.sessionRejected,
	})
	s.refresher = NewRefresher(s.api, defaultRefreshInterval)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Close stops background work; outstanding requests are allowed to finish
// and their late results are discarded.
func (s *Server) Close() {
	s.refresher.Stop()
}

// sessionToken feeds the authenticated transport. An invalid session's
// stale token is retained for display only, never presented to the API.
func (s *Server) sessionToken() string {
	sess := s.sessions.Current()
	if sess.IsInvalid {
		return ""
	}
	return sess.AccessToken
}

// sessionRejected is the 401 path: the API no longer honours the token.
func (s *Server) sessionRejected() {
	if err := s.sessions.MarkInvalid(); err != nil {
		zlog.Warn().Err(err).Msg("failed to mark session invalid")
	}
	s.refresher.Stop()
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s\n", displayMethod, path, errorString)
}
