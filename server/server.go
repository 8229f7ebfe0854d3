// Package server is the HTTP boundary: routing, the per-request
// authenticator, and the translation of domain failures into JSON
// responses.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/leagueforge/leagueforge/auth"
	"github.com/leagueforge/leagueforge/internal/config"
	"github.com/leagueforge/leagueforge/internal/metrics"
	"github.com/leagueforge/leagueforge/leagues"
	"github.com/leagueforge/leagueforge/teams"
	"github.com/leagueforge/leagueforge/token"
	"github.com/leagueforge/leagueforge/token/ledger"
	"github.com/leagueforge/leagueforge/users"
)

const loginAttemptsPerMinute = 10

// Metrics is everything the HTTP layer and the auth service report.
// *metrics.Collector satisfies it; the default is a no-op.
type Metrics interface {
	auth.Metrics
	RecordHTTPStatus(statusCode int)
	RecordHTTPLatency(duration time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RecordRegistration()               {}
func (nopMetrics) RecordLogin()                      {}
func (nopMetrics) RecordLoginFailure()               {}
func (nopMetrics) RecordRefresh()                    {}
func (nopMetrics) RecordTokensRevoked(count int64)   {}
func (nopMetrics) RecordHTTPStatus(statusCode int)   {}
func (nopMetrics) RecordHTTPLatency(d time.Duration) {}

// Repos holds the repository dependencies for the Server.
type Repos struct {
	Users   users.UserRepo
	Ledger  ledger.Repo
	Leagues leagues.Repo
	Teams   teams.Repo
}

// Server wires the routes, middleware and services behind one handler.
type Server struct {
	config  config.Config
	repos   Repos
	codec   *token.Codec
	auth    *auth.Service
	leagues *leagues.Service
	teams   *teams.Service
	oidc    *auth.OIDCClient
	metrics Metrics
	logger  zerolog.Logger
	limiter *loginLimiter
	router  chi.Router

	gatherer prometheus.Gatherer
}

type Option func(*Server)

// WithLogger sets the server logger. The auth service inherits it.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics wires the metrics sink and, when it is a Prometheus
// collector registered on a gatherer, the /metrics endpoint.
func WithMetrics(m Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
		s.gatherer = gatherer
	}
}

// WithOIDC enables the federated login routes.
func WithOIDC(client *auth.OIDCClient) Option {
	return func(s *Server) {
		s.oidc = client
	}
}

func New(cfg config.Config, repos Repos, options ...Option) (*Server, error) {
	s := &Server{
		config:  cfg,
		repos:   repos,
		metrics: nopMetrics{},
		logger:  zerolog.Nop(),
		limiter: newLoginLimiter(loginAttemptsPerMinute),
	}
	for _, option := range options {
		option(s)
	}

	codec, err := token.NewCodec(cfg.GetJWTSecret())
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] token codec")
	}
	s.codec = codec

	authService, err := auth.NewService(
		auth.Repos{Users: repos.Users, Ledger: repos.Ledger},
		codec,
		auth.WithTokenTTLs(cfg.GetAccessTokenTTL(), cfg.GetRefreshTokenTTL()),
		auth.WithProduction(cfg.IsProduction()),
		auth.WithMetrics(s.metrics),
		auth.WithLogger(s.logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] auth service")
	}
	s.auth = authService

	leagueService, err := leagues.NewService(repos.Leagues)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] league service")
	}
	s.leagues = leagueService

	teamService, err := teams.NewService(repos.Teams, repos.Leagues)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New] team service")
	}
	s.teams = teamService

	s.router = s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.RecoverMiddleware)
	r.Use(s.LoggingMiddleware)
	r.Use(s.CorsMiddleware)
	r.Use(s.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(s.RateLimitMiddleware).Post("/register", s.RegisterHandler)
		r.With(s.RateLimitMiddleware).Post("/login", s.LoginHandler)
		r.Post("/refresh-token", s.RefreshHandler)
		r.Post("/logout", s.LogoutHandler)

		r.Get("/oidc/login", s.OIDCLoginHandler)
		r.Get("/oidc/callback", s.OIDCCallbackHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.RequireAuth)

		r.Get("/account", s.AccountHandler)
		r.Patch("/account/change-password", s.ChangePasswordHandler)

		r.Route("/api/leagues", func(r chi.Router) {
			r.Post("/", s.CreateLeagueHandler)
			r.Get("/", s.ListLeaguesHandler)

			r.Route("/{leagueID}", func(r chi.Router) {
				r.Get("/", s.GetLeagueHandler)
				r.Patch("/", s.RenameLeagueHandler)
				r.Delete("/", s.DeleteLeagueHandler)
				r.Post("/teams", s.CreateTeamHandler)
				r.Get("/teams", s.ListTeamsHandler)
			})
		})
		r.Delete("/api/teams/{teamID}", s.DeleteTeamHandler)

		r.With(s.RequireRole(users.RoleAdmin)).
			Post("/api/admin/tokens/purge", s.PurgeTokensHandler)
	})

	return r
}
