package icons

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"icon-builder/core/cache"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fetchWorkers bounds the number of concurrent cache fetches. Per-key
// deduplication is the cache's responsibility.
const fetchWorkers = 8

// Fingerprint computes the content fingerprint of every descriptor in the
// set by fetching its source bytes through the shared cache. Descriptors
// whose bytes are unobtainable are dropped with a warning; the run only
// fails when every single fetch failed.
//
// The returned set is a new Set; the input is not mutated. The second return
// value is the number of dropped descriptors.
func Fingerprint(ctx context.Context, set Set, store cache.SharedCache, reporter *Reporter, logger *zap.Logger) (Set, int, error) {
	ordered := set.Sorted()

	var (
		mu     sync.Mutex
		result = make(Set, len(set))
		missed int
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(fetchWorkers)

	for _, d := range ordered {
		group.Go(func() error {
			data, err := store.Fetch(ctx, d.ResourceKey)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("icon source unobtainable",
					zap.String("canonical_id", d.CanonicalID),
					zap.String("resource", d.ResourceKey),
					zap.Error(err))
				missed++
			} else {
				digest := sha256.Sum256(data)
				d.Fingerprint = hex.EncodeToString(digest[:])
				result[d.CanonicalID] = d
			}

			reporter.Tick()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, missed, newError(KindFetch, "fingerprint", err)
	}

	if len(ordered) > 0 && len(result) == 0 {
		return nil, missed, errorf(KindFetch, "fingerprint", "all %d icon fetches failed", len(ordered))
	}

	return result, missed, nil
}
