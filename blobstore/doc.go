// Package blobstore stores netlist snapshots as immutable named blobs.
//
// Implementations must be safe for concurrent use. Built in:
//
//   - MemoryStore: in-process map, for tests and pipelines
//   - LocalStore: a directory; writes are atomic renames, reads are mmapped
//   - s3.Store and s3.DDBCommitStore: Amazon S3, optionally with a DynamoDB
//     table that serializes updates to the CURRENT pointer
//   - minio.Store: MinIO and other S3-compatible servers
//
// The blob named CURRENT holds the name of the latest committed snapshot.
// Stores without native compare-and-swap simply overwrite it.
package blobstore
