package icons

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Checksum computes a single digest over the sorted (canonical id,
// fingerprint) pairs of the set. The digest is order-independent with
// respect to input table order and reproducible across runs with identical
// data.
func Checksum(set Set) string {
	return ManifestOf(set).Checksum()
}

// Checksum computes the same digest from persisted manifest state, used to
// report on the last packaged set without rebuilding.
func (m Manifest) Checksum() string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		fmt.Fprintf(h, "%s\x1e%s\n", id, m[id].Fingerprint)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// packageChecksum writes the current set's digest to the configured file, or
// prints it to stdout when no file was given.
func (p *Packager) packageChecksum(out ChecksumOutput, current Set) error {
	digest := Checksum(current)

	if out.ToStdout() {
		fmt.Print(digest)
		return nil
	}

	p.logger.Info("writing checksum", zap.String("path", out.Path), zap.String("digest", digest))

	if err := os.MkdirAll(filepath.Dir(out.Path), 0o755); err != nil {
		return newError(KindPackaging, "checksum", err)
	}
	if err := os.WriteFile(out.Path, []byte(digest), 0o644); err != nil {
		return newError(KindPackaging, "checksum", err)
	}
	return nil
}
