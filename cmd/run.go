package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"icon-builder/core/cache"
	"icon-builder/core/config"
	"icon-builder/core/database"
	"icon-builder/core/logger"
	"icon-builder/core/sde"
	"icon-builder/core/storage"
	"icon-builder/feature/icons"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// runBuild is the shared runner behind every build mode subcommand. It wires
// configuration, logging, the resource cache, and the snapshot tables, runs
// the pipeline, and handles the optional publish and history steps.
func runBuild(out icons.Output, artifactPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration and apply flag overrides
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg)

	// 2. Initialize logger. Checksum-to-stdout keeps stdout parseable.
	checksumToStdout := false
	if o, ok := out.(icons.ChecksumOutput); ok {
		checksumToStdout = o.ToStdout()
	}

	var l *zap.Logger
	if checksumToStdout {
		l, err = logger.Quiet(&cfg.Log)
	} else {
		l, err = logger.New(&cfg.Log)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	runID := uuid.NewString()
	l = l.With(zap.String("run_id", runID), zap.String("mode", out.Mode()))

	start := time.Now()

	// 3. Initialize the resource cache
	l.Info("initializing resource cache", zap.String("user_agent", cfg.Cache.UserAgent))
	store, err := cache.NewDownloader(ctx, cfg.Cache, l)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	cacheReady := time.Now()

	// 4. Load snapshot tables
	snapshot, err := sde.Load(ctx, cfg.SDE, l)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	tables, err := snapshot.ReadAll()
	snapshot.Close()
	if err != nil {
		return fmt.Errorf("failed to read snapshot tables: %w", err)
	}
	tablesReady := time.Now()

	// 5. Run the pipeline
	stats, err := icons.Build(ctx, icons.Request{
		Output:       out,
		Tables:       tables,
		Store:        store,
		WorkDir:      iconFolder,
		ForceRebuild: forceRebuild,
		SkipIfFresh:  skipIfFresh,
		SkipSkins:    skipSkins,
		ShowProgress: !noProgress,
		TestTypeID:   testTypeID,
		Logger:       l,
	})
	if err != nil {
		return err
	}
	duration := time.Since(start)

	l.Info("build complete",
		zap.Duration("total", duration),
		zap.Duration("cache_init", cacheReady.Sub(start)),
		zap.Duration("data_load", tablesReady.Sub(cacheReady)),
		zap.Duration("build", time.Since(tablesReady)),
		zap.Int("added", stats.Added),
		zap.Int("removed", stats.Removed),
		zap.Int("warnings", stats.Warnings))

	// 6. Optional artifact publishing
	if publish && artifactPath != "" {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		publisher := icons.NewPublisher(client, cfg.Storage.Bucket, l)
		if err := publisher.Publish(ctx, artifactPath, filepath.Base(artifactPath)); err != nil {
			return fmt.Errorf("failed to publish artifact: %w", err)
		}
	}

	// 7. Optional build-history recording; never fails the run
	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("build history disabled", zap.Error(err))
		} else if recorder, err := icons.NewRecorder(db, l); err != nil {
			l.Warn("build history disabled", zap.Error(err))
		} else {
			recorder.Record(runID, out.Mode(), stats, duration)
		}
	}

	// 8. Drop transient cache files that should not persist between runs
	if err := store.Purge([]string{sde.ArchiveName, "checksum.txt"}); err != nil {
		l.Warn("cache purge incomplete", zap.Error(err))
	}

	return nil
}

// applyFlags layers command line flags over the environment configuration.
func applyFlags(cfg *config.Config) {
	if userAgent != "" {
		cfg.Cache.UserAgent = userAgent
		cfg.SDE.UserAgent = userAgent
	}
	if cacheFolder != "" {
		cfg.Cache.Root = cacheFolder
		cfg.SDE.Root = cacheFolder
	}
	if logFile != "" {
		cfg.Log.File = logFile
		cfg.Log.Append = appendLog
	}
}
