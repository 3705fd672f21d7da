package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability check.
var pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	authService services.AuthService
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer

	mu       sync.RWMutex
	mode     Mode
	email    string
	loggedIn bool
}

// NewApp opens the local database, builds the HTTP client with a token store
// persisted in it and wires the auth service.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	tokens := client.NewMetadataTokenStore(db)

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, tokens)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db)

	return &App{
		config:      c,
		authService: as,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores a saved session, if any, and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	a.Root(ctx)
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		log.Printf("client close error: %s", err.Error())
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("db close error: %s", err.Error())
		}
	}
}

func (a *App) restoreSession(ctx context.Context) error {
	ok, err := a.authService.HasSession(ctx)
	if err != nil {
		return err
	}
	email, err := a.authService.LastEmail(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loggedIn = ok
	if ok {
		a.email = email
	}
	return nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setSession(email string, loggedIn bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.email = email
	a.loggedIn = loggedIn
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loggedIn
}

// checkOnline pings the server once and updates the mode.
func (a *App) checkOnline(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	return nil
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
