package server

import (
	"html/template"
	"net/http"

	"github.com/jrsteele09/nearme-publisher/sessions"
	"github.com/rs/zerolog/log"
)

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.AppName}}</title></head>
<body>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Profile}}<p>Signed in as {{.Profile.Username}}. <a href="/logout">Log out</a></p>
{{else}}<p><a href="/login">Log in</a> to publish a site.</p>
{{end}}</body>
</html>`

type indexData struct {
	AppName string
	Error   string
	Profile *sessions.Profile
}

// IndexHandler renders the status page. An invalid cookie renders the
// anonymous page.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl := template.Must(template.New("index").Parse(indexPage))

	return func(w http.ResponseWriter, r *http.Request) {
		data := indexData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
		}
		if session, ok := s.sessionFromRequest(r); ok {
			data.Profile = &session.Profile
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render index template")
		}
	}
}

type sessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Profile       *sessions.Profile `json:"profile"`
}

// SessionHandler reports who the cookie belongs to, if anyone.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := sessionResponse{}
		if session, ok := s.sessionFromRequest(r); ok {
			resp.Authenticated = true
			resp.Profile = &session.Profile
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
