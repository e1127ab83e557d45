package cache

import (
	"context"
	"errors"
)

// Config holds configuration for the shared resource cache.
type Config struct {
	// Root is the local directory resource bytes are cached under.
	Root string `mapstructure:"root" default:"./cache"`
	// UserAgent identifies this client to the CDN. Required by the CDN
	// operator's usage policy.
	UserAgent string `mapstructure:"user_agent" default:""`
	// BinariesURL is the base URL of the client binaries CDN.
	BinariesURL string `mapstructure:"binaries_url" default:"https://binaries.eveonline.com"`
	// ResourcesURL is the base URL of the shared resources CDN.
	ResourcesURL string `mapstructure:"resources_url" default:"https://resources.eveonline.com"`
	// MacOSBuild selects the macOS client index instead of the Windows one.
	MacOSBuild bool `mapstructure:"macos_build" default:"false"`
}

// ErrNotFound is returned when a resource key is absent from both indices.
var ErrNotFound = errors.New("resource not found")

// ErrProtected is returned when the game server is in a protected state and
// the client index cannot be used.
var ErrProtected = errors.New("game server is protected")

// SharedCache provides keyed access to remote resource bytes backed by a
// local disk store. Implementations must be safe for concurrent use and must
// deduplicate concurrent fetches of the same key.
type SharedCache interface {
	// Version returns the client build number the indices were loaded for.
	Version() string
	// Has reports whether the key exists in the resource indices.
	Has(key string) bool
	// Fetch returns the resource bytes, downloading and caching them locally
	// on first access.
	Fetch(ctx context.Context, key string) ([]byte, error)
	// PathOf returns the local path of the cached resource, downloading it
	// first if necessary.
	PathOf(ctx context.Context, key string) (string, error)
	// Resources returns all known resource keys in sorted order.
	Resources() []string
	// Purge removes local files that are no longer referenced by the indices,
	// keeping the named relative paths.
	Purge(keep []string) error
}
