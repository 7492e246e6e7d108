package server

// Route path constants
const (
	RouteIndex   = "/"
	RouteFavicon = "/favicon.ico"

	// Auth Routes - OAuth login against the hosting provider
	RouteLogin        = "/login"
	RouteAuthCallback = "/auth"
	RouteLogout       = "/logout"

	// API Routes
	RoutePublish    = "/publish"
	RouteAPISession = "/api/session"

	RouteMetrics = "/metrics"
)
