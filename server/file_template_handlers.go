package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/clocklear/pirelayconsole/auth"
	"github.com/clocklear/pirelayconsole/notify"
	"github.com/clocklear/pirelayconsole/relayapi"
	"github.com/clocklear/pirelayconsole/session"
)

const contentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParsePage parses a page template combined with the shared layout.
// Pages define a "content" block that the layout places.
func ParsePage(name string) (*template.Template, error) {
	return template.ParseFS(TemplateFilesFS(), "layout.html", name)
}

func mustParsePage(name string) *template.Template {
	tmpl, err := ParsePage(name)
	if err != nil {
		panic("Failed to parse " + name + " template: " + err.Error())
	}
	return tmpl
}

// pageData carries everything the layout and page templates can render.
// Unused fields stay zero for pages that do not need them.
type pageData struct {
	AppName       string
	Path          string
	Session       session.Session
	Notifications []notify.Notification
	LoginURL      string
	LogoutURL     string

	Relays         []relayapi.Relay
	Schedules      []relayapi.Schedule
	EditedSchedule relayapi.Schedule
	Events         []relayapi.Event
	APIKeys        []relayapi.APIKey
	CreatedKey     string

	ProviderError *auth.ProviderError
	Message       string
}

// page builds the common portion of the template data for a request.
func (s *Server) page(r *http.Request, sess session.Session) pageData {
	return pageData{
		AppName:       s.config.GetAppName(),
		Path:          r.URL.Path,
		Session:       sess,
		Notifications: s.notifier.Drain(),
		LogoutURL:     s.authenticator.LogoutURL(),
	}
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data pageData) {
	s.renderStatus(w, tmpl, data, http.StatusOK)
}

func (s *Server) renderStatus(w http.ResponseWriter, tmpl *template.Template, data pageData, status int) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		zlog.Error().Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
	}
}

var deniedTmpl = mustParsePage("denied.html")

// renderAccessDenied is the terminal page for an invalid session. The
// only way out is the logout affordance it carries.
func (s *Server) renderAccessDenied(w http.ResponseWriter, sess session.Session) {
	data := pageData{
		AppName:   s.config.GetAppName(),
		Session:   sess,
		Path:      RouteLogout,
		Message:   "You shouldn't be here",
		LogoutURL: s.authenticator.LogoutURL(),
	}
	s.renderStatus(w, deniedTmpl, data, http.StatusForbidden)
}
