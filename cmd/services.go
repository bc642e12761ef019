package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xvierd/startpage/internal/adapters/clock"
	"github.com/xvierd/startpage/internal/adapters/notification"
	"github.com/xvierd/startpage/internal/adapters/storage"
	"github.com/xvierd/startpage/internal/catalog"
	"github.com/xvierd/startpage/internal/config"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/logging"
	"github.com/xvierd/startpage/internal/ports"
	"github.com/xvierd/startpage/internal/services"
	"github.com/xvierd/startpage/internal/timer"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	storage  ports.Storage
	links    *services.LinkService
	catalog  *services.CatalogService
	notifier *notification.Notifier
	timer    *timer.Engine
	desk     *services.DeskService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	cfg, err := config.Load()
	if err != nil {
		// A broken command table is fatal; anything else falls back to defaults.
		if errors.Is(err, domain.ErrInvalidCommand) {
			return err
		}
		logging.L().Warn("using default config", "err", err)
		cfg = config.DefaultConfig()
	}
	app.config = cfg

	level := cfg.Log.Level
	if debugMode {
		level = "debug"
	}
	if err := logging.SetLevel(level); err != nil {
		logging.L().Warn("ignoring log level", "err", err)
	}

	if dbPath == "" {
		dbPath = config.GetDBPath(cfg)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.links = services.NewLinkService(app.storage)

	ctx := context.Background()
	if cfg.Catalog.Seed {
		n, err := app.links.EnsureSeeded(ctx, catalog.Seed())
		if err != nil {
			logging.L().Warn("seeding catalog failed", "err", err)
		} else if n > 0 {
			logging.L().Info("seeded catalog", "links", n)
		}
	}

	var source ports.CatalogSource = app.links
	if cfg.Catalog.File != "" {
		source = catalog.FileSource{Path: cfg.Catalog.File}
	}
	app.catalog = services.NewCatalogService(source, cfg.Catalog.CacheSize)
	app.catalog.Load(ctx)

	app.notifier = notification.New(&cfg.Notifications)
	app.timer = timer.New(clock.NewReal(),
		timer.WithConfig(cfg.ToTimerConfig()),
		timer.WithNotifier(app.notifier),
	)

	table, err := cfg.CommandTable()
	if err != nil {
		return err
	}
	if shadowed := table.Shadowed(); len(shadowed) > 0 {
		logging.L().Warn("command triggers can only fire when pasted", "triggers", shadowed)
	}
	app.desk = services.NewDeskService(table, app.timer, app.catalog, cfg.StartTheme())

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.timer != nil {
		app.timer.Close()
		app.timer = nil
	}
	if app.storage != nil {
		err := app.storage.Close()
		app.storage = nil
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
