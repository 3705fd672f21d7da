package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := ""
	if a.loggedIn && a.email != "" {
		s = a.email + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	s = strings.TrimSpace(s)
	if s != "" {
		s = fmt.Sprintf(" (%s)", s)
	}
	return s
}

// Root pings the server once, starts the background connectivity watcher
// and runs the REPL until the user leaves.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to AuthKeeper CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	_ = a.checkOnline(ctx)

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
