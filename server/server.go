package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/nearme-publisher/auth"
	"github.com/jrsteele09/nearme-publisher/internal/config"
	"github.com/jrsteele09/nearme-publisher/publish"
	"github.com/jrsteele09/nearme-publisher/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the HTTP layer drives.
type Dependencies struct {
	Codec     *sessions.Codec
	Provider  *auth.Provider
	Publisher *publish.Service
	Gatherer  prometheus.Gatherer
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	codec     *sessions.Codec
	provider  *auth.Provider
	publisher *publish.Service
	gatherer  prometheus.Gatherer
}

func New(c config.Config, deps Dependencies) (*Server, error) {
	switch {
	case deps.Codec == nil:
		return nil, fmt.Errorf("[Server New] session codec is required")
	case deps.Provider == nil:
		return nil, fmt.Errorf("[Server New] oauth provider is required")
	case deps.Publisher == nil:
		return nil, fmt.Errorf("[Server New] publisher is required")
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		env:       c.GetEnv(),
		mux:       http.NewServeMux(),
		config:    c,
		codec:     deps.Codec,
		provider:  deps.Provider,
		publisher: deps.Publisher,
		gatherer:  deps.Gatherer,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) isDev() bool {
	return s.env == "DEV"
}

func (s *Server) logRoutes() {
	if !s.isDev() {
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
	log.Info().Msgf("[%-19s] %s", colourMethod(method), path)
}

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
