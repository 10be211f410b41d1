package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Public pages
	RouteIndex        = "/{$}"
	RouteSearch       = "/search-professionals"
	RouteProfessional = "/search-professionals/{id}"
	RouteSubmitReview = "/search-professionals/{id}/review"

	// Auth pages
	RouteSignup = "/signup"
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// Authenticated pages
	RouteProfile        = "/profile"
	RouteProfileOptions = "/profile-options"
	RouteJoinAsPro      = "/join-as-pro"
	RouteWizardCities   = "/join-as-pro/cities"

	// Operational
	RouteMetrics = "/metrics"
)

const contentTypeHTML = "text/html; charset=utf-8"
