// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client, which talks to both AWS S3 and self-hosted MinIO.
// The service only writes JSON snapshots of races and participation records, so
// the Client interface covers bucket checks, uploads and listing.
//
// # Client Interface
//
// The Client interface keeps the provider swappable for unit tests (see
// core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the bucket on first use.
//   - PutJSON: encodes a value and uploads it with a JSON content type.
//   - ListKeys: lists object keys under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	info, err := storage.PutJSON(ctx, client, cfg.Storage.Bucket, "exports/x.json", snapshot)
package storage
