package icons

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
)

// fakeCache is an in-memory SharedCache for pipeline tests. PathOf
// materializes bytes into a temp dir on demand.
type fakeCache struct {
	t         *testing.T
	dir       string
	mu        sync.Mutex
	resources map[string][]byte
	fail      map[string]bool
}

func newFakeCache(t *testing.T) *fakeCache {
	return &fakeCache{
		t:         t,
		dir:       t.TempDir(),
		resources: make(map[string][]byte),
		fail:      make(map[string]bool),
	}
}

func (f *fakeCache) put(key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resources[key] = data
}

func (f *fakeCache) failOn(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[key] = true
}

func (f *fakeCache) Version() string { return "1000" }

func (f *fakeCache) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.resources[key]
	return ok
}

func (f *fakeCache) Fetch(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[key] {
		return nil, fmt.Errorf("resource not found: %s", key)
	}
	data, ok := f.resources[key]
	if !ok {
		return nil, fmt.Errorf("resource not found: %s", key)
	}
	return data, nil
}

func (f *fakeCache) PathOf(ctx context.Context, key string) (string, error) {
	data, err := f.Fetch(ctx, key)
	if err != nil {
		return "", err
	}
	name := strings.NewReplacer(":", "_", "/", "_").Replace(key)
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeCache) Resources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.resources))
	for key := range f.resources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (f *fakeCache) Purge([]string) error { return nil }
