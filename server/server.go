// Package server renders the marketplace pages: navigation shell, auth
// flows, vendor discovery and profiles, the onboarding wizard and the
// review composer. Every page is a thin view over the backend client.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/designmatch/web-client/backend"
	"github.com/designmatch/web-client/internal/config"
	"github.com/designmatch/web-client/internal/obs"
	"github.com/designmatch/web-client/location"
	"github.com/designmatch/web-client/onboarding"
	"github.com/designmatch/web-client/server/ui"
	"github.com/designmatch/web-client/session"
)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	api       *backend.Client
	sessions  *session.Store
	locations *location.Index
	limiter   *ipLimiter

	// Per-session wizard state. Wizard-scoped only: a fresh visit gets a
	// fresh wizard and nothing survives a restart.
	wizards     map[string]*onboarding.Wizard
	wizardsLock sync.Mutex
}

func New(cfg config.Config, sessionRepo session.Repo) *Server {
	api := backend.New(cfg.GetAPIBaseURL(), time.Duration(cfg.GetBackendTimeout())*time.Second)

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		api:       api,
		sessions:  session.NewStore(api, sessionRepo),
		locations: location.NewIndex(api),
		limiter:   newIPLimiter(cfg.GetRateLimitPerSecond(), cfg.GetRateLimitBurst()),
		wizards:   make(map[string]*onboarding.Wizard),
	}
	s.env = cfg.GetEnv()

	obs.Init()

	// Application-start equivalent of the SPA's initial queries: the
	// state list is loaded once; a failure leaves it empty.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.GetBackendTimeout())*time.Second)
	defer cancel()
	s.locations.LoadStates(ctx)

	s.initRoutes()
	s.logRoutes()

	return s
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

// wizardFor returns the session's wizard, creating one when fresh is set
// or none exists yet.
func (s *Server) wizardFor(sessionID string, fresh bool) *onboarding.Wizard {
	s.wizardsLock.Lock()
	defer s.wizardsLock.Unlock()

	w, ok := s.wizards[sessionID]
	if !ok || fresh {
		w = onboarding.NewWizard()
		s.wizards[sessionID] = w
	}
	return w
}

// dropWizard discards the session's wizard after submission or abandon.
func (s *Server) dropWizard(sessionID string) {
	s.wizardsLock.Lock()
	defer s.wizardsLock.Unlock()
	delete(s.wizards, sessionID)
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
	if color, ok := ui.MethodColors[method]; ok {
		displayMethod = color + paddedMethod + ui.ResetColor
	} else {
		displayMethod = ui.Gray + paddedMethod + ui.ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
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
