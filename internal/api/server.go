package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"netbridge/internal/audit"
	"netbridge/internal/infrastructure/config"
	"netbridge/internal/infrastructure/logging"
	"netbridge/internal/inventory"
)

// gracefulShutdownTimeout bounds how long Close waits for in-flight
// requests to complete.
const gracefulShutdownTimeout = 10 * time.Second

// Inventory is the surface of the inventory service the API consumes.
type Inventory interface {
	List(ctx context.Context, kind inventory.Kind, opts inventory.ListOptions) (any, error)
	Choices(ctx context.Context) inventory.ChoiceCatalog
	DeviceWithPorts(ctx context.Context, ref, site string) (*inventory.DeviceDetail, error)
	PrepareDevice(ctx context.Context, fields map[string]any) (*inventory.PrepareResult, error)
	CreateDevice(ctx context.Context, body map[string]any) (*inventory.CreateResult, error)
	CreatePorts(ctx context.Context, kind inventory.PortKind, deviceID int, items []map[string]any) (*inventory.BatchResult, error)
}

// Deps contains the dependencies required by the API server.
type Deps struct {
	Config    *config.Config
	Logger    *logging.Logger
	Inventory Inventory

	// Audit is optional. When nil, create operations are not recorded
	// and the audit endpoints return 503.
	Audit audit.Repository

	Version string
}

// Server is the HTTP API server.
type Server struct {
	config    *config.Config
	security  config.SecurityConfig
	logger    *logging.Logger
	inventory Inventory
	audit     audit.Repository
	version   string

	httpServer *http.Server
}

// New creates an API server from the given dependencies.
func New(deps Deps) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("api: config is required")
	}
	if deps.Logger == nil {
		return nil, errors.New("api: logger is required")
	}
	if deps.Inventory == nil {
		return nil, errors.New("api: inventory service is required")
	}

	return &Server{
		config:    deps.Config,
		security:  deps.Config.Security,
		logger:    deps.Logger.With("component", "api"),
		inventory: deps.Inventory,
		audit:     deps.Audit,
		version:   deps.Version,
	}, nil
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.API.Host, s.config.API.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router(),
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  s.config.GetIdleTimeout(),
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Close shuts the server down gracefully, waiting for in-flight
// requests up to gracefulShutdownTimeout.
func (s *Server) Close() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down API server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	return nil
}
