package server

import (
	"fmt"
	"log"

	"github.com/designmatch/web-client/internal/obs"
	"github.com/designmatch/web-client/server/ui"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))

	// Discovery
	s.RegisterRouteFunc("GET "+RouteSearch, ChainMiddleware(s.SearchHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteProfessional, ChainMiddleware(s.ProfessionalHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteSubmitReview, ChainMiddleware(s.SubmitReviewHandler(), s.HTMLMiddleWare()...))

	// Auth
	s.RegisterRouteFunc("GET "+RouteSignup, ChainMiddleware(s.SignupGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteSignup, ChainMiddleware(s.SignupPostHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginGetHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginPostHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// Authenticated pages
	s.RegisterRouteFunc("GET "+RouteProfile, ChainMiddleware(s.ProfileHandler(), s.HTMLMiddleWare(s.RequireLogin())...))
	s.RegisterRouteFunc("POST "+RouteProfile, ChainMiddleware(s.ProfileSaveHandler(), s.HTMLMiddleWare(s.RequireLogin())...))
	s.RegisterRouteFunc("GET "+RouteProfileOptions, ChainMiddleware(s.ProfileOptionsHandler(), s.HTMLMiddleWare(s.RequireLogin())...))

	// Onboarding wizard
	s.RegisterRouteFunc("GET "+RouteJoinAsPro, ChainMiddleware(s.WizardGetHandler(), s.HTMLMiddleWare(s.RequireLogin())...))
	s.RegisterRouteFunc("POST "+RouteJoinAsPro, ChainMiddleware(s.WizardPostHandler(), s.HTMLMiddleWare(s.RequireLogin())...))
	s.RegisterRouteFunc("GET "+RouteWizardCities, ChainMiddleware(s.WizardCitiesHandler(), s.HTMLMiddleWare(s.RequireLogin())...))

	s.RegisterRouteHandler("GET "+RouteMetrics, obs.Handler())

	// Static assets
	s.RegisterRouteHandler("GET /css/", FileServerHandler())

	// Unknown paths render the not-found page rather than a bare 404
	s.RegisterRouteFunc("GET /", ChainMiddleware(s.NotFoundHandler(), s.HTMLMiddleWare()...))
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := ui.MethodColors[method]; ok {
		displayMethod = color + paddedMethod + ui.ResetColor
	} else {
		displayMethod = ui.Gray + paddedMethod + ui.ResetColor
	}
	errorString := ui.Red + error + ui.ResetColor
	log.Printf("[%-19s] %s %s\n", displayMethod, path, errorString)
}
