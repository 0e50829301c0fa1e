// Package app initializes and runs the maintenance tool: it wires the
// database, archive sink, and task service, dispatches the CLI command, and
// handles graceful shutdown in serve mode.
package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/authmaint/internal/archive"
	"github.com/dmitrijs2005/authmaint/internal/config"
	"github.com/dmitrijs2005/authmaint/internal/logging"
	"github.com/dmitrijs2005/authmaint/internal/promptx"
	"github.com/dmitrijs2005/authmaint/internal/repositories/repomanager"
	"github.com/dmitrijs2005/authmaint/internal/server"
	"github.com/dmitrijs2005/authmaint/internal/tasks"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	service *tasks.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var sink archive.Sink = archive.NopSink{}
	if cfg.S3Bucket != "" {
		s3sink, err := archive.NewS3Sink(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("archive init error: %w", err)
		}
		sink = s3sink
	}

	m := repomanager.NewPostgresRepositoryManager()
	service := tasks.NewService(db, m, sink, logger, cfg.BatchSize)

	return &App{config: cfg, logger: logger, db: db, service: service}, nil
}

// Close releases the database handle.
func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run dispatches the CLI command. Recognized commands: migrate, serve,
// token, runs, all, and the individual task names.
func (app *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: authmaint <migrate|%s|all|runs|token|serve> [flags]", joinNames())
	}

	command := args[0]

	switch command {
	case "migrate":
		return app.service.RunMigrations(ctx)
	case "serve":
		return app.runServe(ctx)
	case "token":
		return app.runToken(ctx, args[1:])
	case "runs":
		return app.printRuns(ctx)
	case "all":
		return app.runTasks(ctx, tasks.Names())
	default:
		for _, name := range tasks.Names() {
			if command == name {
				return app.runTasks(ctx, []string{name})
			}
		}
		return fmt.Errorf("unknown command %q", command)
	}
}

// runTasks confirms destructive work once, then executes the given tasks in
// order, printing one report per task.
func (app *App) runTasks(ctx context.Context, names []string) error {
	destructive := false
	for _, name := range names {
		if tasks.IsDestructive(name) {
			destructive = true
			break
		}
	}
	if destructive {
		what := fmt.Sprintf("delete rows from the database (%s)", strings.Join(names, ", "))
		if err := promptx.Confirm(os.Stdin, os.Stdout, what, app.config.AssumeYes); err != nil {
			return err
		}
	}

	for _, name := range names {
		report, err := app.service.Run(ctx, name)
		if err != nil {
			return err
		}
		if err := printJSON(report); err != nil {
			return err
		}
	}

	return nil
}

func (app *App) runServe(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	s := server.NewServer(app.config.AdminAddr, app.service, app.logger, []byte(app.config.SecretKey))
	return s.Run(ctx)
}

func (app *App) printRuns(ctx context.Context) error {
	runs, err := app.service.ListRuns(ctx, 50)
	if err != nil {
		return err
	}
	return printJSON(runs)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinNames() string {
	return strings.Join(tasks.Names(), "|")
}
