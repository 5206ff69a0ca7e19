// Package server wires the contactkeeper server together: configuration,
// database and migrations, services, and the HTTP and gRPC transports. It
// also owns the process lifecycle and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/dmitrijs2005/contactkeeper/internal/server/auth"
	"github.com/dmitrijs2005/contactkeeper/internal/server/config"
	"github.com/dmitrijs2005/contactkeeper/internal/server/httpserver"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
	"github.com/dmitrijs2005/contactkeeper/internal/server/validation"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/contactkeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	redis   *redis.Client
	handler http.Handler
}

// NewApp validates c, opens the database, applies migrations and builds the
// HTTP handler. A production config without a real signing key is rejected
// before anything is opened.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "using the development signing key; set JWT_SECRET before deploying")
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app, err := newApp(c, logger, db, rm)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// newApp builds services and the router on an already prepared database.
func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}
	tokens := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	v := validation.New()

	authService := services.NewAuthService(db, rm, tokens, hasher, v)
	contactService := services.NewContactService(db, rm, v)
	userService := services.NewUserService(db, rm)

	store, redisClient, err := httpserver.NewLimiterStore(c.RedisURL)
	if err != nil {
		return nil, err
	}
	rateLimit, err := httpserver.NewIPRateLimiter(c.RateLimit, store)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, fmt.Errorf("rate limit %q: %w", c.RateLimit, err)
	}

	// a nil *redis.Client must not reach the handler as a non-nil RedisPinger
	var health *httpserver.HealthHandler
	if redisClient != nil {
		health = httpserver.NewHealthHandler(db, redisClient)
	} else {
		health = httpserver.NewHealthHandler(db, nil)
	}

	httpLogger := logger.With("module", "http")
	handler := httpserver.NewRouter(httpserver.RouterConfig{
		Handlers:      httpserver.NewHandlers(authService, contactService, userService, c.MaxPageLimit, httpLogger),
		Gate:          httpserver.NewAuthGate(tokens, userService, httpLogger),
		Health:        health,
		Logger:        httpLogger,
		Secure:        httpserver.NewSecure(httpserver.SecureOptions(!c.Production)),
		CORS:          httpserver.NewCORS(c.AllowedOrigins),
		AuthRateLimit: rateLimit,
		Metrics:       true,
	})

	return &App{config: c, logger: logger, db: db, redis: redisClient, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpserver.NewServer(app.config.EndpointAddrHTTP, app.handler, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc server error", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a transport fails,
// then waits for both servers to stop and releases connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
