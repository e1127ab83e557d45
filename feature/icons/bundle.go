package icons

import (
	"archive/zip"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// bundleMetadataName is the metadata document inside a service bundle.
const bundleMetadataName = "metadata.json"

// bundleMetadata is the service bundle's embedded metadata document.
type bundleMetadata struct {
	GeneratedAt time.Time     `json:"generated_at"`
	IconCount   int           `json:"icon_count"`
	Icons       []bundleEntry `json:"icons"`
}

type bundleEntry struct {
	CanonicalID string `json:"canonical_id"`
	OutputPath  string `json:"output_relative_path"`
	Fingerprint string `json:"fingerprint"`
	Category    int    `json:"category"`
}

// packageBundle writes the service bundle: every current icon image plus the
// metadata document, sorted by canonical id.
func (p *Packager) packageBundle(ctx context.Context, out BundleOutput, current Set) error {
	kept, paths, err := p.materialize(ctx, current.Sorted())
	if err != nil {
		return err
	}

	p.logger.Info("writing service bundle", zap.String("path", out.Path), zap.Int("icons", len(kept)))

	return writeArchive(out.Path, func(zw *zip.Writer) error {
		meta := bundleMetadata{
			GeneratedAt: time.Now().UTC(),
			IconCount:   len(kept),
			Icons:       make([]bundleEntry, 0, len(kept)),
		}

		for i, d := range kept {
			if err := addFile(zw, d.OutputPath, paths[i]); err != nil {
				return err
			}
			meta.Icons = append(meta.Icons, bundleEntry{
				CanonicalID: d.CanonicalID,
				OutputPath:  d.OutputPath,
				Fingerprint: d.Fingerprint,
				Category:    d.CategoryID,
			})
		}

		doc, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return newError(KindPackaging, "bundle", err)
		}
		return addBytes(zw, bundleMetadataName, doc)
	})
}

// packageExport writes the plain export collection: the current icon images,
// flat, no metadata document.
func (p *Packager) packageExport(ctx context.Context, out ExportOutput, current Set) error {
	kept, paths, err := p.materialize(ctx, current.Sorted())
	if err != nil {
		return err
	}

	p.logger.Info("writing export collection", zap.String("path", out.Path), zap.Int("icons", len(kept)))

	return writeArchive(out.Path, func(zw *zip.Writer) error {
		for i, d := range kept {
			if err := addFile(zw, d.OutputPath, paths[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
