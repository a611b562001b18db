package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/client/auth"
	"github.com/dmitrijs2005/screenmock/internal/client/client"
	"github.com/dmitrijs2005/screenmock/internal/client/config"
	"github.com/dmitrijs2005/screenmock/internal/client/exporter"
	"github.com/dmitrijs2005/screenmock/internal/client/handoff"
	"github.com/dmitrijs2005/screenmock/internal/client/repositories/history"
	"github.com/dmitrijs2005/screenmock/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/screenmock/internal/client/services"
	"github.com/dmitrijs2005/screenmock/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	sinkFile = "file"
	sinkS3   = "s3"
)

// tokenStore is the part of auth.Store the commands use.
type tokenStore interface {
	SignIn(ctx context.Context, token string) error
	SignOut(ctx context.Context) error
	SignedIn(ctx context.Context) bool
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	tokens  tokenStore
	credits services.CreditService
	session services.SessionService
	slots   *handoff.Store
	history history.Repository
	sinks   map[string]exporter.Sink
	reader  *bufio.Reader
	out     io.Writer
	theme   theme
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	meta := metadata.NewSQLiteRepository(db)
	hist := history.NewSQLiteRepository(db)
	tokens := auth.NewStore(meta)

	api := client.NewHTTPClient(c.BaseURL, tokens, &http.Client{}, logger)
	credits := services.NewCreditService(api, c.CreditsTTL, logger)
	slots := handoff.New()
	session := services.NewSessionService(api, credits, slots, services.SessionOptions{
		ChatID:      c.ChatID,
		HistoryKeep: c.HistoryKeep,
		History:     hist,
		Metadata:    meta,
	}, logger)

	sinks := map[string]exporter.Sink{sinkFile: exporter.FileSink{Dir: c.ExportDir}}
	if c.S3Bucket != "" {
		sinks[sinkS3] = exporter.NewS3Sink(exporter.S3Config{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		}, logger)
	}

	return &App{
		config:  c,
		logger:  logger.With("module", "cli"),
		db:      db,
		tokens:  tokens,
		credits: credits,
		session: session,
		slots:   slots,
		history: hist,
		sinks:   sinks,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		theme:   defaultTheme(),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.tokens.SignedIn(context.Background())
}

// StartCreditsWatcher revalidates the credit ledger every interval while a
// user is signed in. The cache TTL decides whether a tick hits the network.
func (a *App) StartCreditsWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}
			reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			a.credits.Refresh(reqCtx, false)
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
