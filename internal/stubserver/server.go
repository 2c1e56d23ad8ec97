// Package stubserver is an in-memory stand-in for the chess game server API.
// It speaks the same HTTP surface so the CLI can be exercised locally and in
// tests without the real server.
package stubserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Server represents the HTTP server
type Server struct {
	router      *gin.Engine
	store       *memoryStore
	logger      zerolog.Logger
	allowOrigin string
	bcryptCost  int
}

// Option configures a Server
type Option func(*Server)

// WithAllowOrigin sets the CORS origin allowed to call the API; "*" allows any
func WithAllowOrigin(origin string) Option {
	return func(s *Server) {
		s.allowOrigin = origin
	}
}

// WithBcryptCost overrides the password hashing cost
func WithBcryptCost(cost int) Option {
	return func(s *Server) {
		s.bcryptCost = cost
	}
}

// New creates a new server instance
func New(zlog zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		logger:      zlog,
		allowOrigin: "*",
		bcryptCost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.store = newMemoryStore(s.bcryptCost)
	s.setupRouter()

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if s.allowOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{s.allowOrigin}
	}
	s.router.Use(cors.New(corsConfig))

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Error: Endpoint not found"})
	})

	// Public endpoints
	s.router.DELETE("/db", s.clear)
	s.router.POST("/user", s.register)
	s.router.POST("/session", s.login)

	// Authenticated endpoints
	authed := s.router.Group("/")
	authed.Use(s.authMiddleware())
	{
		authed.DELETE("/session", s.logout)
		authed.GET("/game", s.listGames)
		authed.POST("/game", s.createGame)
		authed.PUT("/game", s.joinGame)
	}
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting stub server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
