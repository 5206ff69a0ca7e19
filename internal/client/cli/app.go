package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/config"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/services"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	authService    services.AuthService
	contactService services.ContactService
	reader         *bufio.Reader
	out            io.Writer

	mu      sync.Mutex
	mode    Mode
	session *models.Session
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "path", c.SessionFile, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		authService:    services.NewAuthService(apiClient, db),
		contactService: services.NewContactService(apiClient, db),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// Run restores a saved session, starts the connectivity watcher and serves
// the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Error(context.Background(), "session database close error", "error", err)
		}
	}()

	a.restore(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to contactkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restore(ctx context.Context) {
	s, err := a.authService.Restore(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrNotLoggedIn) {
			a.logger.Warn(ctx, "could not restore session", "error", err)
		}
		return
	}
	a.setSession(s)
	a.logger.Info(ctx, "session restored", "email", s.Email)
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil
}

func (a *App) setSession(s *models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed && a.logger != nil {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

// getStatus renders the prompt prefix, e.g. "(alice@example.com online)".
func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.session != nil {
		s = a.session.Email
	}
	if a.mode != "" {
		if s != "" {
			s += " "
		}
		s += string(a.mode)
	}
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

// StartOnlineStatusWatcher probes the server every interval and flips the
// connectivity mode on changes. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
