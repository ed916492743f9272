// Package httpapi exposes the SafeRide REST endpoint: authentication,
// user/company/child administration, relationships, rides and route planning.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/saferide/saferide/internal/logging"
	"github.com/saferide/saferide/internal/server/config"
	"github.com/saferide/saferide/internal/server/services"
)

// Server wires the service layer to the chi router and owns the http.Server
// lifecycle.
type Server struct {
	cfg    *config.Config
	logger logging.Logger

	authService         *services.AuthService
	userService         *services.UserService
	companyService      *services.CompanyService
	childService        *services.ChildService
	relationshipService *services.RelationshipService
	rideService         *services.RideService

	metrics      *MetricsCollector
	gatherer     prometheus.Gatherer
	loginLimiter *loginLimiter

	httpServer *http.Server
}

// Services groups the service-layer dependencies of the REST endpoint.
type Services struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Companies     *services.CompanyService
	Children      *services.ChildService
	Relationships *services.RelationshipService
	Rides         *services.RideService
}

func NewServer(cfg *config.Config, logger logging.Logger, svc Services) *Server {
	registry := prometheus.NewRegistry()

	return &Server{
		cfg:                 cfg,
		logger:              logger,
		authService:         svc.Auth,
		userService:         svc.Users,
		companyService:      svc.Companies,
		childService:        svc.Children,
		relationshipService: svc.Relationships,
		rideService:         svc.Rides,
		metrics:             NewMetricsCollector(registry),
		gatherer:            registry,
		loginLimiter:        newLoginLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst),
	}
}

// Run starts serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.EndpointAddrHTTP,
		Handler: s.Router(),
	}

	s.logger.Info(ctx, "http server starting", "addr", s.cfg.EndpointAddrHTTP)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the background limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	s.loginLimiter.Stop()

	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
