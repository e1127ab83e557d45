package icons

import (
	"archive/zip"
	"context"
	"fmt"
	"sort"
	"strings"

	"icon-builder/core/sde"

	"go.uber.org/zap"
)

// packageAuxIcons archives the icon-file table's assets regardless of type
// linkage: UI and overlay art not reachable through type resolution.
func (p *Packager) packageAuxIcons(ctx context.Context, out AuxIconsOutput, tables *sde.Tables) error {
	ids := make([]int, 0, len(tables.IconFiles))
	for id := range tables.IconFiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	p.logger.Info("writing auxiliary icon dump", zap.String("path", out.Path), zap.Int("icons", len(ids)))

	return writeArchive(out.Path, func(zw *zip.Writer) error {
		written := 0
		for _, id := range ids {
			resource := tables.IconFiles[id]
			local, err := p.store.PathOf(ctx, resource)
			if err != nil {
				if ctx.Err() != nil {
					return newError(KindFetch, "aux-icons", ctx.Err())
				}
				p.logger.Warn("skipping auxiliary icon",
					zap.Int("icon_id", id),
					zap.String("resource", resource),
					zap.Error(err))
				continue
			}
			name := fmt.Sprintf("%d.%s", id, extensionOf(resource))
			if err := addFile(zw, name, local); err != nil {
				return err
			}
			written++
		}
		if len(ids) > 0 && written == 0 {
			return errorf(KindFetch, "aux-icons", "all %d icon fetches failed", len(ids))
		}
		return nil
	})
}

// packageAuxAll archives every image asset discoverable in the resource
// indices, keyed by its path with the scheme stripped.
func (p *Packager) packageAuxAll(ctx context.Context, out AuxAllOutput) error {
	var resources []string
	for _, key := range p.store.Resources() {
		if strings.HasSuffix(key, "png") || strings.HasSuffix(key, "jpg") {
			resources = append(resources, key)
		}
	}

	p.logger.Info("writing full image dump", zap.String("path", out.Path), zap.Int("images", len(resources)))

	return writeArchive(out.Path, func(zw *zip.Writer) error {
		written := 0
		for _, key := range resources {
			local, err := p.store.PathOf(ctx, key)
			if err != nil {
				if ctx.Err() != nil {
					return newError(KindFetch, "aux-all", ctx.Err())
				}
				p.logger.Warn("skipping image", zap.String("resource", key), zap.Error(err))
				continue
			}
			name := key
			if _, after, found := strings.Cut(key, ":/"); found {
				name = after
			}
			if err := addFile(zw, name, local); err != nil {
				return err
			}
			written++
		}
		if len(resources) > 0 && written == 0 {
			return errorf(KindFetch, "aux-all", "all %d image fetches failed", len(resources))
		}
		return nil
	})
}

// extensionOf returns the resource's file extension, falling back to the
// last path segment for extensionless resources.
func extensionOf(resource string) string {
	if idx := strings.LastIndex(resource, "."); idx >= 0 && idx < len(resource)-1 {
		return resource[idx+1:]
	}
	segments := strings.Split(resource, "/")
	return segments[len(segments)-1]
}
