// Package cli implements the interactive SafeRide admin console.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/saferide/saferide/internal/client/api"
	"github.com/saferide/saferide/internal/client/config"
	"github.com/saferide/saferide/internal/client/session"
	"github.com/saferide/saferide/internal/client/tokenstore"
	"github.com/saferide/saferide/internal/logging"
)

type App struct {
	config  *config.Config
	client  *api.Client
	session *session.Manager
	logger  logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	handler := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(handler)

	db, err := tokenstore.InitDatabase(ctx, c.TokenStorePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err.Error())
		return nil, err
	}

	client := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	store := tokenstore.NewSQLiteStore(db, logger)
	manager := session.NewManager(client, store, logger)

	return &App{
		config:  c,
		client:  client,
		session: manager,
		logger:  logger,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	// Resolve any persisted session before showing the prompt.
	a.session.Initialize(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) statusLine() string {
	if user := a.session.User(); user != nil {
		return user.Email
	}
	return "not logged in"
}
