// Package server wires configuration, storage, the cipher engine and the
// gRPC transport into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/server/backup"
	"github.com/dmitrijs2005/gophvault/internal/server/config"
	"github.com/dmitrijs2005/gophvault/internal/server/ratelimit"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophvault/internal/server/services"
	"github.com/dmitrijs2005/gophvault/internal/tlsx"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophvault/internal/server/grpc"
)

// tokenSweepInterval is how often expired refresh tokens are purged.
var tokenSweepInterval = time.Hour

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	users  *services.UserService
	server *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, slog.LevelInfo), cryptox.DefaultParams())
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, kdf cryptox.Params) (*App, error) {
	var (
		db  *sql.DB
		rm  repomanager.RepositoryManager
		err error
	)

	creds, err := tlsx.ServerCredentials(c.TLSCertFile, c.TLSKeyFile)
	if err != nil {
		return nil, fmt.Errorf("tls error: %w", err)
	}
	if !c.TLSEnabled() {
		logger.Warn(ctx, "TLS not configured, master passwords travel in plaintext")
	}

	if c.UseMemoryStore() {
		logger.Warn(ctx, "Using in-memory storage, data will be lost on restart")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
	}

	var exporter backup.Exporter
	if c.BackupEnabled() {
		exporter = backup.NewS3Exporter(c)
	} else {
		logger.Info(ctx, "S3 bucket not configured, vault export disabled")
	}

	engine := cryptox.NewEngine(kdf, c.KDFConcurrency)
	us := services.NewUserService(db, rm, c)
	vs := services.NewVaultService(db, rm, engine, exporter)
	limiter := ratelimit.New(c.RateLimitPermits, c.RateLimitWindow)

	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, vs, us.TokenConfig(), limiter)
	srv.SetCredentials(creds)

	return &App{config: c, logger: logger, db: db, users: us, server: srv}, nil
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

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Run(ctx)
	})
	g.Go(func() error {
		app.sweepRefreshTokens(ctx, tokenSweepInterval)
		return nil
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err.Error())
	}

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(ctx, "db close error", "error", cerr.Error())
		}
	}

	app.logger.Info(ctx, "App stopped")
	return err
}

func (app *App) sweepRefreshTokens(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := app.users.PurgeExpiredRefreshTokens(ctx)
			if err != nil {
				app.logger.Error(ctx, "refresh token sweep failed", "error", err.Error())
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired refresh tokens purged", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
