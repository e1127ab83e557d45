package icons

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// ManifestName is the manifest file kept in the work directory.
const ManifestName = "manifest.json"

// ManifestEntry is one icon's persisted state from the last successfully
// packaged run.
type ManifestEntry struct {
	CanonicalID string `json:"canonical_id"`
	Fingerprint string `json:"fingerprint"`
	OutputPath  string `json:"output_relative_path"`
}

// Manifest is the persisted descriptor state keyed by canonical id. It always
// reflects the last successfully packaged run, never a partial one.
type Manifest map[string]ManifestEntry

// LoadManifest reads the manifest from dir. An absent file is an empty
// manifest, which makes the next run a full build.
func LoadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if os.IsNotExist(err) {
		return Manifest{}, nil
	}
	if err != nil {
		return nil, newError(KindPackaging, "manifest.load", err)
	}

	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, newError(KindData, "manifest.load", err)
	}

	manifest := make(Manifest, len(entries))
	for _, entry := range entries {
		manifest[entry.CanonicalID] = entry
	}
	return manifest, nil
}

// ManifestOf converts a descriptor set into manifest form.
func ManifestOf(set Set) Manifest {
	manifest := make(Manifest, len(set))
	for id, d := range set {
		manifest[id] = ManifestEntry{
			CanonicalID: id,
			Fingerprint: d.Fingerprint,
			OutputPath:  d.OutputPath,
		}
	}
	return manifest
}

// Save writes the manifest atomically: a temp file in the same directory is
// fully written, then renamed over the previous manifest. Entries are sorted
// by canonical id for reproducible bytes.
func (m Manifest) Save(dir string) error {
	entries := make([]ManifestEntry, 0, len(m))
	for _, entry := range m {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CanonicalID < entries[j].CanonicalID
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return newError(KindPackaging, "manifest.save", err)
	}

	tmp, err := os.CreateTemp(dir, ManifestName+".*")
	if err != nil {
		return newError(KindPackaging, "manifest.save", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return newError(KindPackaging, "manifest.save", err)
	}
	if err := tmp.Close(); err != nil {
		return newError(KindPackaging, "manifest.save", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, ManifestName)); err != nil {
		return newError(KindPackaging, "manifest.save", err)
	}
	return nil
}
