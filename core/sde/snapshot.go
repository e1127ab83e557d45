package sde

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds configuration for the static data export source.
type Config struct {
	// Root is the directory the downloaded archive is kept in.
	Root string `mapstructure:"root" default:"./cache"`
	// BaseURL is the static data publication endpoint.
	BaseURL string `mapstructure:"base_url" default:"https://developers.eveonline.com/static-data"`
	// UserAgent identifies this client to the publisher.
	UserAgent string `mapstructure:"user_agent" default:""`
}

// ArchiveName is the local file name of the cached snapshot archive. Cache
// purges must keep it between runs.
const ArchiveName = "sde.zip"

// Snapshot is an open, versioned static data archive. Close releases the
// underlying file handle.
type Snapshot struct {
	archive *zip.Reader
	closer  io.Closer
	version int
	logger  *zap.Logger
}

// Load returns the current snapshot, downloading a fresh archive when the
// published build number differs from the cached copy.
func Load(ctx context.Context, cfg Config, logger *zap.Logger) (*Snapshot, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	path := filepath.Join(cfg.Root, ArchiveName)

	client := &http.Client{Timeout: 10 * time.Minute}

	latest, err := publishedVersion(ctx, client, cfg)
	if err != nil {
		return nil, err
	}

	download := true
	if archive, err := zip.OpenReader(path); err == nil {
		if current, err := archiveVersion(&archive.Reader); err == nil && current == latest {
			download = false
		}
		archive.Close()
	}

	if download {
		logger.Info("downloading snapshot", zap.Int("build", latest))
		if err := downloadArchive(ctx, client, cfg, path); err != nil {
			return nil, err
		}
	} else {
		logger.Info("snapshot is current", zap.Int("build", latest))
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot archive: %w", err)
	}

	version, err := archiveVersion(&archive.Reader)
	if err != nil {
		archive.Close()
		return nil, err
	}

	return &Snapshot{archive: &archive.Reader, closer: archive, version: version, logger: logger}, nil
}

// Open wraps an already-open archive reader, used by tests with in-memory
// archives. The reader has no underlying handle; Close is a no-op.
func Open(r *zip.Reader, logger *zap.Logger) *Snapshot {
	return &Snapshot{archive: r, version: 0, logger: logger}
}

// Version returns the snapshot's build number.
func (s *Snapshot) Version() int {
	return s.version
}

// Close releases the underlying archive handle.
func (s *Snapshot) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func publishedVersion(ctx context.Context, client *http.Client, cfg Config) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/tranquility/latest.jsonl", nil)
	if err != nil {
		return 0, err
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch snapshot version: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch snapshot version: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	return parseVersionLines(string(body))
}

func archiveVersion(archive *zip.Reader) (int, error) {
	f, err := archive.Open("_sde.jsonl")
	if err != nil {
		return 0, fmt.Errorf("snapshot archive has no version member: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return 0, err
	}
	return parseVersionLines(string(content))
}

// parseVersionLines finds the build number in a JSONL version document.
func parseVersionLines(content string) (int, error) {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if line == "" {
			continue
		}
		var entry struct {
			Key         string `json:"_key"`
			BuildNumber int    `json:"buildNumber"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if entry.Key == "sde" {
			return entry.BuildNumber, nil
		}
	}
	return 0, fmt.Errorf("no sde build number in version document")
}

func downloadArchive(ctx context.Context, client *http.Client, cfg Config, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+"/eve-online-static-data-latest-jsonl.zip", nil)
	if err != nil {
		return err
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download snapshot: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ArchiveName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
