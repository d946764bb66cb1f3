package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/netslab/blobstore"
	miniostore "github.com/hupe1980/netslab/blobstore/minio"
	s3store "github.com/hupe1980/netslab/blobstore/s3"
	"github.com/spf13/cobra"
)

var (
	storeURI string
	ddbTable string
)

// memStore backs mem:// and lives as long as the process.
var memStore = blobstore.NewMemoryStore()

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&storeURI, "store", ".netslab", "Snapshot store: a directory, file://, s3://bucket/prefix, minio://endpoint/bucket/prefix or mem://")
	cmd.Flags().StringVar(&ddbTable, "ddb-table", "", "DynamoDB table that records commits for s3:// stores")
}

// openStore resolves a store URI. MinIO credentials come from
// MINIO_ACCESS_KEY and MINIO_SECRET_KEY, and MINIO_SECURE=true selects HTTPS.
func openStore(ctx context.Context, uri string) (blobstore.Store, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return blobstore.NewLocalStore(uri), nil
	}

	switch scheme {
	case "file":
		return blobstore.NewLocalStore(rest), nil
	case "mem":
		return memStore, nil
	case "s3":
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return nil, fmt.Errorf("store %q: missing bucket", uri)
		}
		opts := []s3store.Option{s3store.WithPrefix(prefix)}
		if ddbTable != "" {
			return s3store.NewCommitStore(ctx, bucket, ddbTable, opts...)
		}
		return s3store.New(ctx, bucket, opts...)
	case "minio":
		endpoint, path, _ := strings.Cut(rest, "/")
		bucket, prefix, _ := strings.Cut(path, "/")
		if endpoint == "" || bucket == "" {
			return nil, fmt.Errorf("store %q: want minio://endpoint/bucket[/prefix]", uri)
		}
		s, err := miniostore.Dial(endpoint, bucket, miniostore.Config{
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Secure:    os.Getenv("MINIO_SECURE") == "true",
			Prefix:    prefix,
		})
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("store %q: unknown scheme %q", uri, scheme)
	}
}
