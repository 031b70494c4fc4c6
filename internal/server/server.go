// Package server holds the application container: configuration, loggers,
// the store, the optional Redis client and the HTTP server built on them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio-api/internal/config"
	"github.com/deppfellow/portfolio-api/internal/database"
	loggerPkg "github.com/deppfellow/portfolio-api/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// Server is the application container shared by middleware, handlers and
// repositories. It is not the HTTP server itself.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application; it is nil-safe when the
	// agent is disabled.
	LoggerService *loggerPkg.LoggerService

	Store database.Store

	// Redis backs the rate limiter. It is nil when no address is configured.
	Redis *redis.Client

	httpServer *http.Server
}

// New connects the store and, when configured, Redis.
//
// A Redis ping failure is logged but does not stop startup; the rate
// limiter falls back to memory only when Redis is not configured at all.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	store, err := database.Open(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Store:         store,
	}

	if cfg.Redis.Address != "" {
		server.Redis = newRedisClient(cfg.Redis.Address, logger, loggerService)
	}

	return server, nil
}

// NewWithStore builds a Server around an already opened store. Tests use
// it with an in-memory SQLite store.
func NewWithStore(cfg *config.Config, logger *zerolog.Logger, store database.Store) *Server {
	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: &loggerPkg.LoggerService{},
		Store:         store,
	}
}

func newRedisClient(addr string, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", addr).Msg("failed to connect to Redis, continuing")
	}

	return client
}

// SetupHTTPServer configures the HTTP server around handler. Timeouts are
// configured in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("driver", s.Store.Dialect().Name()).
		Msg("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes Redis and the store.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Warn().Err(err).Msg("failed to close Redis client")
		}
	}

	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
