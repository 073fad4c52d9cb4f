package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/view"
)

const address = "0.0.0.0"

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth      *auth.Authenticator
	Dashboard *dashboard.Service
	Views     *view.Renderer
	// NewRelic may be nil, in which case handlers are not instrumented.
	NewRelic *newrelic.Application
	// Ping reports whether the backing store is reachable. Optional.
	Ping func(ctx context.Context) error
}

type Server struct {
	port          int
	deps          Deps
	theme         string
	secureCookies bool
	cookieTTL     time.Duration
	corsOrigins   []string
	// publicURL is the origin browsers post forms from. When nil the
	// request Host is trusted instead.
	publicURL     *url.URL
	httpServer    *http.Server
}

func NewServer(cfg *Config, port int, deps Deps) *Server {
	s := &Server{
		port:          port,
		deps:          deps,
		theme:         view.NormalizeTheme(cfg.Theme, view.ThemeDark),
		secureCookies: cfg.SecureCookies,
		cookieTTL:     cfg.RefreshTTL,
		corsOrigins:   cfg.CORSOrigins,
	}
	if u, err := url.Parse(cfg.PublicURL); err == nil && u.Host != "" {
		s.publicURL = u
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%v:%v", address, port),
		Handler:      s.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

func (s *Server) routes() http.Handler {
	router := mux.NewRouter()

	standard := alice.New(s.recoverPanic, s.logRequest, secureHeaders)
	pages := alice.New(s.requireSession(false))
	forms := alice.New(s.sameOrigin)
	api := alice.New(s.cors().Handler, makeResponseJSON)
	protectedAPI := api.Append(s.requireSession(true))

	s.handle(router, "/health", api.ThenFunc(s.health), http.MethodGet)

	s.handle(router, "/", http.HandlerFunc(s.home), http.MethodGet)
	s.handle(router, "/login", http.HandlerFunc(s.loginPage), http.MethodGet)
	s.handle(router, "/login", forms.ThenFunc(s.login), http.MethodPost)
	s.handle(router, "/logout", forms.ThenFunc(s.logout), http.MethodPost)
	s.handle(router, "/dashboard", pages.ThenFunc(s.dashboardPage), http.MethodGet)

	s.handle(router, "/api/auth/token", api.ThenFunc(s.token), http.MethodPost, http.MethodOptions)
	s.handle(router, "/api/payment-intents", protectedAPI.ThenFunc(s.listIntents), http.MethodGet, http.MethodOptions)
	s.handle(router, "/api/payment-intents/{id}", protectedAPI.ThenFunc(s.getIntent), http.MethodGet, http.MethodOptions)
	s.handle(router, "/api/stats", protectedAPI.ThenFunc(s.stats), http.MethodGet, http.MethodOptions)

	return standard.Then(router)
}

// handle registers h under pattern, instrumented with New Relic when an
// application is configured.
func (s *Server) handle(router *mux.Router, pattern string, h http.Handler, methods ...string) {
	router.Handle(newrelic.WrapHandle(s.deps.NewRelic, pattern, h)).Methods(methods...)
}

func (s *Server) cors() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}

func (s *Server) Run() error {
	log.Printf("listening requests at %v:%v", address, s.port)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
