// Package snapshot persists netlist designs.
//
// A snapshot records every table's index layout next to its elements, so a
// loaded design hands out the same indices as the saved one, including the
// order in which recycled indices are reissued.
//
// Snapshots are stored in a blobstore.Store. Commit points the CURRENT blob
// at a snapshot and LoadCurrent follows it:
//
//	name, err := snapshot.Save(ctx, store, "", design, snapshot.WithCompression(snapshot.CompressionZSTD))
//	if err != nil {
//		return err
//	}
//	if err := snapshot.Commit(ctx, store, name); err != nil {
//		return err
//	}
//
//	design, name, err := snapshot.LoadCurrent(ctx, store)
package snapshot
