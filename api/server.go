package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/api/types"
	"github.com/killallgit/timeline-api/internal/database"
	"github.com/killallgit/timeline-api/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	cfg         *config.Config
	rateLimiter *RateLimiter

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(address string, cfg *config.Config) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	server := &Server{
		engine: engine,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:           address,
			Handler:        engine,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.ReadTimeout,
			MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		},
	}
	if cfg.RateLimiting.Enabled {
		server.rateLimiter = NewRateLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.Burst)
	}

	return server
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(db *database.DB) {
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{}
	}
	s.dependencies.DB = db
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	s.setupMiddleware()
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiter)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	if s.cfg.Logging.Debug {
		s.engine.Use(gin.Logger())
	}
	if s.cfg.Security.EnableCORS {
		s.engine.Use(CORS(s.cfg.Security))
	}
	s.engine.Use(RequestSizeLimitWithSize(s.cfg.Server.MaxBodyBytes))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and then flushes every open timeline
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	err := s.httpServer.Shutdown(ctx)
	if s.dependencies != nil && s.dependencies.Sessions != nil {
		if flushErr := s.dependencies.Sessions.CloseAll(ctx); flushErr != nil && err == nil {
			err = flushErr
		}
	}
	return err
}
