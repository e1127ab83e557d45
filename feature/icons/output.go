package icons

import (
	"os"
)

// Output selects and parameterizes the artifact a run produces. Each mode is
// its own type carrying exactly the fields it needs; Validate rejects bad
// destinations before any work begins.
type Output interface {
	// Mode returns the mode's stable name, used in logs and build history.
	Mode() string
	// Validate checks the destination. Failures are config errors.
	Validate() error
}

// LinkStrategy selects how web directory entries are materialized.
type LinkStrategy int

const (
	// LinkSymlink creates symbolic links into the icon work directory.
	LinkSymlink LinkStrategy = iota
	// LinkHard creates hard links. Crossing a filesystem boundary is a
	// packaging error, never a silent copy fallback.
	LinkHard
	// LinkCopy copies the files.
	LinkCopy
)

func (s LinkStrategy) String() string {
	switch s {
	case LinkHard:
		return "hardlink"
	case LinkCopy:
		return "copy"
	default:
		return "symlink"
	}
}

// BundleOutput produces a single archive with every current icon image plus
// a metadata document.
type BundleOutput struct {
	// Path is the archive file to write.
	Path string
}

func (o BundleOutput) Mode() string    { return "bundle" }
func (o BundleOutput) Validate() error { return validateArchivePath(o.Mode(), o.Path) }

// ExportOutput produces a single flat archive of the current icon images,
// without metadata.
type ExportOutput struct {
	// Path is the archive file to write.
	Path string
}

func (o ExportOutput) Mode() string    { return "export" }
func (o ExportOutput) Validate() error { return validateArchivePath(o.Mode(), o.Path) }

// WebDirOutput materializes the current set as a web-servable directory
// tree, one entry per icon.
type WebDirOutput struct {
	// Path is the directory to populate.
	Path string
	// Strategy selects symlink (default), hard link, or copy.
	Strategy LinkStrategy
}

func (o WebDirOutput) Mode() string { return "webdir" }

func (o WebDirOutput) Validate() error {
	if o.Path == "" {
		return errorf(KindConfig, o.Mode(), "output directory is required")
	}
	if info, err := os.Stat(o.Path); err == nil && !info.IsDir() {
		return errorf(KindConfig, o.Mode(), "output %q must be a directory", o.Path)
	}
	return nil
}

// ChecksumOutput reports a single digest over the current set, to a file or,
// with an empty Path, to stdout.
type ChecksumOutput struct {
	// Path is the file to write the digest to; empty prints to stdout.
	Path string
}

func (o ChecksumOutput) Mode() string { return "checksum" }

func (o ChecksumOutput) Validate() error {
	if o.Path == "" {
		return nil
	}
	if info, err := os.Stat(o.Path); err == nil && info.IsDir() {
		return errorf(KindConfig, o.Mode(), "output %q must be a file", o.Path)
	}
	return nil
}

// ToStdout reports whether the digest goes to stdout. That variant exists
// only to report current state, so freshness skipping and manifest rewriting
// are disabled for it.
func (o ChecksumOutput) ToStdout() bool { return o.Path == "" }

// AuxIconsOutput archives the curated icon-file assets regardless of type
// linkage.
type AuxIconsOutput struct {
	// Path is the archive file to write.
	Path string
}

func (o AuxIconsOutput) Mode() string    { return "aux-icons" }
func (o AuxIconsOutput) Validate() error { return validateArchivePath(o.Mode(), o.Path) }

// AuxAllOutput archives every image asset discoverable in the resource
// indices.
type AuxAllOutput struct {
	// Path is the archive file to write.
	Path string
}

func (o AuxAllOutput) Mode() string    { return "aux-all" }
func (o AuxAllOutput) Validate() error { return validateArchivePath(o.Mode(), o.Path) }

func validateArchivePath(mode, path string) error {
	if path == "" {
		return errorf(KindConfig, mode, "output file is required")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errorf(KindConfig, mode, "output %q must be a file", path)
	}
	return nil
}
