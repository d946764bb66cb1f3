// Package minio stores netlist snapshots on MinIO or any S3-compatible
// server reachable with the MinIO client (Ceph, Garage, SeaweedFS).
//
//	store, err := minio.Dial("localhost:9000", "designs", minio.Config{
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Prefix:    "netslab/",
//	})
//
// No AWS SDK is involved, which suits air-gapped sites.
package minio
