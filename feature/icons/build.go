package icons

import (
	"context"
	"os"

	"icon-builder/core/cache"
	"icon-builder/core/sde"

	"go.uber.org/zap"
)

// Request parameterizes one build run.
type Request struct {
	// Output selects the artifact mode and its destination.
	Output Output
	// Tables are the snapshot tables the build resolves against.
	Tables *sde.Tables
	// Store is the shared resource cache icon bytes come from.
	Store cache.SharedCache
	// WorkDir is where the manifest lives between runs.
	WorkDir string
	// ForceRebuild treats every current icon as added.
	ForceRebuild bool
	// SkipIfFresh skips packaging entirely when nothing changed. Ignored
	// for checksum-to-stdout, whose whole point is reporting current state.
	SkipIfFresh bool
	// SkipSkins excludes skin-category types from the build set.
	SkipSkins bool
	// ShowProgress enables periodic progress logging.
	ShowProgress bool
	// TestTypeID restricts the build to a single type when non-zero.
	TestTypeID int
	// Logger receives progress and per-icon warnings. Defaults to a nop
	// logger.
	Logger *zap.Logger
}

// Stats summarizes a completed run.
type Stats struct {
	// Added is the number of icons new or changed since the last manifest.
	Added int
	// Removed is the number of manifest entries gone from the current set.
	Removed int
	// Warnings is the number of icons skipped over unobtainable sources.
	Warnings int
	// Checksum is the digest of the current descriptor set.
	Checksum string
}

// Build runs the full pipeline: assemble the descriptor set, fingerprint it,
// diff it against the persisted manifest, package the requested artifact,
// and persist the updated manifest. On any fatal error the previous manifest
// and artifact remain valid, so an interrupted run costs only repeated
// resolution work.
func Build(ctx context.Context, req Request) (Stats, error) {
	logger := req.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := req.Output.Validate(); err != nil {
		return Stats{}, err
	}
	if err := os.MkdirAll(req.WorkDir, 0o755); err != nil {
		return Stats{}, newError(KindConfig, "build", err)
	}

	manifest, err := LoadManifest(req.WorkDir)
	if err != nil {
		return Stats{}, err
	}

	assembled, err := Assemble(req.Tables, req.SkipSkins, req.TestTypeID)
	if err != nil {
		return Stats{}, err
	}
	logger.Info("build set assembled", zap.Int("icons", len(assembled)))

	reporter := NewReporter(logger, "fingerprint", len(assembled), req.ShowProgress)
	current, missed, err := Fingerprint(ctx, assembled, req.Store, reporter, logger)
	if err != nil {
		return Stats{}, err
	}
	reporter.Finish()

	changes := Diff(current, manifest, req.ForceRebuild)
	logger.Info("change detection complete",
		zap.Int("added", len(changes.Added)),
		zap.Int("unchanged", len(changes.Unchanged)),
		zap.Int("removed", len(changes.Removed)))

	stats := Stats{
		Added:    len(changes.Added),
		Removed:  len(changes.Removed),
		Warnings: missed,
		Checksum: Checksum(current),
	}

	checksumToStdout := false
	if o, ok := req.Output.(ChecksumOutput); ok {
		checksumToStdout = o.ToStdout()
	}

	if changes.Fresh() && req.SkipIfFresh && !checksumToStdout {
		logger.Info("icons unchanged, skipping output")
		return stats, nil
	}

	packager := NewPackager(req.Store, logger)
	if err := packager.Package(ctx, req.Output, current, changes, req.Tables); err != nil {
		return Stats{}, err
	}

	// The stdout checksum variant only reports state; it must not commit a
	// new manifest it produced no artifact for.
	if !checksumToStdout {
		if err := ManifestOf(current).Save(req.WorkDir); err != nil {
			return Stats{}, err
		}
	}

	return stats, nil
}
