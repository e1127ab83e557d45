// Package icons implements the incremental icon build and packaging
// pipeline.
//
// A run turns the current snapshot tables into a packaged set of item icon
// images while avoiding redundant work when the underlying data has not
// changed:
//
//  1. Resolver: maps each type record to zero-or-one source image reference
//     through a deterministic fallback chain (icon file, graphics folder
//     default variant, skin material).
//  2. Assemble: collects the full descriptor set for the run, keyed by
//     canonical id.
//  3. Fingerprint: hashes the resolved source bytes of every descriptor
//     through the shared resource cache with a bounded worker pool.
//  4. Diff: partitions the set into added, unchanged, and removed relative
//     to the persisted manifest of the last successful run.
//  5. Packager: materializes the requested output (service bundle, plain
//     export archive, web directory, checksum, auxiliary dumps) and rewrites
//     the manifest atomically.
//
// The pipeline phases run sequentially; only source byte fetching is
// parallel. Errors are tagged by kind (config, data, fetch, packaging) so
// callers branch on classification instead of message text. Per-icon fetch
// failures are warnings; every other failure aborts the run and leaves the
// previous manifest and artifact intact.
//
// Publisher and Recorder are optional post-run collaborators: uploading the
// artifact to object storage and recording run statistics in the
// build-history table.
package icons
