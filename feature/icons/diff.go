package icons

import "sort"

// Changes partitions a run's descriptor set against the previous manifest.
type Changes struct {
	// Added holds descriptors absent from the manifest or carrying a new
	// fingerprint.
	Added []Descriptor
	// Unchanged holds descriptors whose manifest fingerprint still matches.
	Unchanged []Descriptor
	// Removed holds manifest entries with no descriptor in the current set.
	Removed []ManifestEntry
}

// Fresh reports whether nothing was added or removed relative to the
// manifest.
func (c Changes) Fresh() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Diff compares the current descriptor set against the previous manifest.
// Both sides are treated as unordered key sets; the returned slices are
// sorted by canonical id so downstream output is reproducible.
//
// With forceRebuild every current descriptor counts as added, while the
// manifest is still consulted for removal bookkeeping.
func Diff(current Set, manifest Manifest, forceRebuild bool) Changes {
	var changes Changes

	for _, d := range current.Sorted() {
		if forceRebuild {
			changes.Added = append(changes.Added, d)
			continue
		}
		previous, ok := manifest[d.CanonicalID]
		if !ok || previous.Fingerprint != d.Fingerprint {
			changes.Added = append(changes.Added, d)
		} else {
			changes.Unchanged = append(changes.Unchanged, d)
		}
	}

	for id, entry := range manifest {
		if _, ok := current[id]; !ok {
			changes.Removed = append(changes.Removed, entry)
		}
	}
	sort.Slice(changes.Removed, func(i, j int) bool {
		return changes.Removed[i].CanonicalID < changes.Removed[j].CanonicalID
	})

	return changes
}
