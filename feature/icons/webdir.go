package icons

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// packageWebDir materializes the current set into a web-servable directory.
// Entries for removed ids are deleted first; re-running with no changes
// leaves the tree identical. Unlike the archive modes the tree is updated in
// place, not via temp and rename: a failure mid-run can leave a partially
// updated tree, and the manifest stays at the prior state until the next
// successful run converges the directory again.
func (p *Packager) packageWebDir(ctx context.Context, out WebDirOutput, current Set, changes Changes) error {
	if err := os.MkdirAll(out.Path, 0o755); err != nil {
		return newError(KindPackaging, "webdir", err)
	}

	for _, removed := range changes.Removed {
		target := filepath.Join(out.Path, filepath.FromSlash(removed.OutputPath))
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return newError(KindPackaging, "webdir", err)
		}
		p.logger.Debug("removed stale entry", zap.String("path", removed.OutputPath))
	}

	kept, paths, err := p.materialize(ctx, current.Sorted())
	if err != nil {
		return err
	}

	p.logger.Info("building web directory",
		zap.String("path", out.Path),
		zap.Stringer("strategy", out.Strategy),
		zap.Int("icons", len(kept)))

	for i, d := range kept {
		target := filepath.Join(out.Path, filepath.FromSlash(d.OutputPath))
		if err := placeEntry(paths[i], target, out.Strategy); err != nil {
			return err
		}
	}
	return nil
}

// placeEntry creates one web directory entry. A hard link failure (e.g.
// crossing a filesystem boundary) is a packaging error, never a silent copy
// fallback.
func placeEntry(source, target string, strategy LinkStrategy) error {
	// Links cannot be created over an existing name.
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return newError(KindPackaging, "webdir", err)
	}

	switch strategy {
	case LinkCopy:
		return copyFile(source, target)
	case LinkHard:
		if err := os.Link(source, target); err != nil {
			return newError(KindPackaging, "webdir", err)
		}
		return nil
	default:
		absSource, err := filepath.Abs(source)
		if err != nil {
			return newError(KindPackaging, "webdir", err)
		}
		if err := os.Symlink(absSource, target); err != nil {
			return newError(KindPackaging, "webdir", err)
		}
		return nil
	}
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return newError(KindPackaging, "webdir", err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return newError(KindPackaging, "webdir", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return newError(KindPackaging, "webdir", err)
	}
	if err := out.Close(); err != nil {
		return newError(KindPackaging, "webdir", err)
	}
	return nil
}
