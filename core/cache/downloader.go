package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// indexEntry is one line of a CDN index file.
type indexEntry struct {
	path string // relative cache/download path
	hash string
	size int64
	base string // base URL the entry is served from
}

// clientInfo is the CDN's published client descriptor.
type clientInfo struct {
	Protected   bool `json:"protected"`
	BuildNumber int  `json:"buildNumber"`
}

// Downloader implements SharedCache against the game CDN with a local disk
// store. Concurrent fetches of the same key are collapsed into one download.
type Downloader struct {
	cfg     Config
	client  *http.Client
	logger  *zap.Logger
	version string

	appIndex map[string]indexEntry
	resIndex map[string]indexEntry

	sf singleflight.Group
}

// NewDownloader loads the client and resource indices and prepares the local
// store. It refuses a cache root that looks like a game installation.
func NewDownloader(ctx context.Context, cfg Config, logger *zap.Logger) (*Downloader, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache root: %w", err)
	}

	for _, marker := range []string{"updater.exe", "tq"} {
		if _, err := os.Stat(filepath.Join(cfg.Root, marker)); err == nil {
			return nil, fmt.Errorf("cache root %q looks like a game installation", cfg.Root)
		}
	}

	d := &Downloader{
		cfg:      cfg,
		client:   &http.Client{Timeout: 5 * time.Minute},
		logger:   logger,
		appIndex: make(map[string]indexEntry),
		resIndex: make(map[string]indexEntry),
	}

	info, err := d.fetchClientInfo(ctx)
	if err != nil {
		return nil, err
	}
	if info.Protected {
		return nil, ErrProtected
	}
	d.version = strconv.Itoa(info.BuildNumber)

	indexName := fmt.Sprintf("eveonline_%s.txt", d.version)
	if cfg.MacOSBuild {
		indexName = fmt.Sprintf("eveonlinemacOS_%s.txt", d.version)
	}
	indexURL := cfg.BinariesURL + "/" + indexName

	indexContent, err := d.fetchFile(ctx, filepath.Join(cfg.Root, indexName), indexURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load client index: %w", err)
	}
	d.loadIndex(string(indexContent), cfg.BinariesURL, d.appIndex)

	resContent, err := d.Fetch(ctx, "app:/resfileindex.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to load resource index: %w", err)
	}
	d.loadIndex(string(resContent), cfg.ResourcesURL, d.resIndex)

	logger.Info("resource cache ready",
		zap.String("version", d.version),
		zap.Int("app_entries", len(d.appIndex)),
		zap.Int("res_entries", len(d.resIndex)))

	return d, nil
}

func (d *Downloader) fetchClientInfo(ctx context.Context) (*clientInfo, error) {
	body, err := d.get(ctx, d.cfg.BinariesURL+"/eveclient_TQ.json")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client info: %w", err)
	}
	var info clientInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse client info: %w", err)
	}
	return &info, nil
}

// loadIndex parses a CDN index file: resourcePath,filePath,hash[,size] per line.
func (d *Downloader) loadIndex(content, base string, into map[string]indexEntry) {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}
		var size int64
		if len(parts) > 3 {
			size, _ = strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
		}
		key := normalizeKey(parts[0])
		into[key] = indexEntry{
			path: strings.TrimSpace(parts[1]),
			hash: strings.TrimSpace(parts[2]),
			size: size,
			base: base,
		}
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "\\", "/")
}

func (d *Downloader) lookup(key string) (indexEntry, bool) {
	key = normalizeKey(key)
	if entry, ok := d.appIndex[key]; ok {
		return entry, true
	}
	entry, ok := d.resIndex[key]
	return entry, ok
}

// Version returns the client build number the indices were loaded for.
func (d *Downloader) Version() string {
	return d.version
}

// Has reports whether the key exists in the resource indices.
func (d *Downloader) Has(key string) bool {
	_, ok := d.lookup(key)
	return ok
}

// Fetch returns the resource bytes, downloading them on first access.
func (d *Downloader) Fetch(ctx context.Context, key string) ([]byte, error) {
	entry, ok := d.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return d.fetchFile(ctx, filepath.Join(d.cfg.Root, filepath.FromSlash(entry.path)), entry.base+"/"+entry.path)
}

// PathOf returns the local path of the cached resource, downloading it first
// if necessary.
func (d *Downloader) PathOf(ctx context.Context, key string) (string, error) {
	entry, ok := d.lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	local := filepath.Join(d.cfg.Root, filepath.FromSlash(entry.path))
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	if _, err := d.fetchFile(ctx, local, entry.base+"/"+entry.path); err != nil {
		return "", err
	}
	return local, nil
}

// Resources returns all known resource keys in sorted order.
func (d *Downloader) Resources() []string {
	keys := make([]string, 0, len(d.appIndex)+len(d.resIndex))
	for key := range d.appIndex {
		keys = append(keys, key)
	}
	for key := range d.resIndex {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Purge removes local files no longer referenced by the indices, keeping the
// named relative paths (transient bookkeeping files live outside the index).
func (d *Downloader) Purge(keep []string) error {
	valid := make(map[string]struct{}, len(d.appIndex)+len(d.resIndex)+len(keep))
	for _, entry := range d.appIndex {
		valid[filepath.FromSlash(entry.path)] = struct{}{}
	}
	for _, entry := range d.resIndex {
		valid[filepath.FromSlash(entry.path)] = struct{}{}
	}
	for _, name := range keep {
		valid[filepath.FromSlash(name)] = struct{}{}
	}

	return filepath.Walk(d.cfg.Root, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(d.cfg.Root, path)
		if err != nil {
			return err
		}
		if _, ok := valid[rel]; !ok {
			if removeErr := os.Remove(path); removeErr != nil {
				d.logger.Warn("failed to purge cache file", zap.String("path", rel), zap.Error(removeErr))
			}
		}
		return nil
	})
}

// fetchFile returns the file's bytes, preferring the local copy and
// downloading it otherwise. Concurrent callers for the same local path share
// one download.
func (d *Downloader) fetchFile(ctx context.Context, local, url string) ([]byte, error) {
	if data, err := os.ReadFile(local); err == nil {
		return data, nil
	}

	result, err, _ := d.sf.Do(local, func() (any, error) {
		// Double-check after acquiring the singleflight slot; another caller
		// may have completed the download already.
		if data, err := os.ReadFile(local); err == nil {
			return data, nil
		}

		data, err := d.get(ctx, url)
		if err != nil {
			return nil, err
		}

		if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache dir: %w", err)
		}
		if err := os.WriteFile(local, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write cache file: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (d *Downloader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if d.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
