// Package s3 stores netlist snapshots in Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket", s3.WithPrefix("designs/"))
//
// Small blobs are written with a single PutObject carrying a CRC32C
// checksum; larger ones go through the multipart upload manager. Reads use
// ranged GetObject requests.
//
// S3 has no compare-and-swap, so concurrent writers of the CURRENT pointer
// race. DDBCommitStore serializes them through a DynamoDB table.
package s3
