// Package cache provides keyed access to game resource bytes with a local
// disk store.
//
// Resources are addressed by "app:/..." and "res:/..." keys resolved through
// two CDN index files: the client binaries index and the shared resource
// index. Bytes are downloaded once and reused from disk on every later
// access, so repeated builds only pay network cost for resources that
// actually changed upstream.
//
// Concurrent fetches of the same key are deduplicated with singleflight:
// at most one download is in flight per resource at any time.
//
// # Usage
//
//	c, err := cache.NewDownloader(cfg.Cache, log)
//	data, err := c.Fetch(ctx, "res:/ui/texture/icons/7_64_15.png")
package cache
