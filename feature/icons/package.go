package icons

import (
	"context"

	"icon-builder/core/cache"
	"icon-builder/core/sde"

	"go.uber.org/zap"
)

// Packager materializes a run's output artifact. It is single-writer:
// concurrent packaging of the same destination is the caller's problem to
// prevent.
type Packager struct {
	store  cache.SharedCache
	logger *zap.Logger
}

// NewPackager creates a packager fetching icon bytes through the given
// cache.
func NewPackager(store cache.SharedCache, logger *zap.Logger) *Packager {
	return &Packager{store: store, logger: logger}
}

// Package writes the artifact the output describes. Archive and manifest
// writes are atomic; a failure mid-write leaves the previous artifact and
// manifest untouched.
func (p *Packager) Package(ctx context.Context, out Output, current Set, changes Changes, tables *sde.Tables) error {
	switch o := out.(type) {
	case BundleOutput:
		return p.packageBundle(ctx, o, current)
	case ExportOutput:
		return p.packageExport(ctx, o, current)
	case WebDirOutput:
		return p.packageWebDir(ctx, o, current, changes)
	case ChecksumOutput:
		return p.packageChecksum(o, current)
	case AuxIconsOutput:
		return p.packageAuxIcons(ctx, o, tables)
	case AuxAllOutput:
		return p.packageAuxAll(ctx, o)
	default:
		return errorf(KindConfig, "package", "unsupported output mode %T", out)
	}
}

// materialize resolves every descriptor to a local file path, skipping icons
// whose bytes are unobtainable. It fails only when nothing materialized at
// all.
func (p *Packager) materialize(ctx context.Context, ordered []Descriptor) ([]Descriptor, []string, error) {
	kept := ordered[:0:0]
	paths := make([]string, 0, len(ordered))

	for _, d := range ordered {
		local, err := p.store.PathOf(ctx, d.ResourceKey)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, newError(KindFetch, "package", ctx.Err())
			}
			p.logger.Warn("skipping icon with unobtainable source",
				zap.String("canonical_id", d.CanonicalID),
				zap.String("resource", d.ResourceKey),
				zap.Error(err))
			continue
		}
		kept = append(kept, d)
		paths = append(paths, local)
	}

	if len(ordered) > 0 && len(kept) == 0 {
		return nil, nil, errorf(KindFetch, "package", "all %d icon fetches failed", len(ordered))
	}
	return kept, paths, nil
}
