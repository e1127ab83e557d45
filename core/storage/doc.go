// Package storage provides the object storage client used to publish built
// icon artifacts (archives and bundle metadata) to an S3-compatible backend.
//
// The Client interface abstracts the Minio SDK so the publisher can be tested
// against the mock implementation in storage/mocks.
package storage
