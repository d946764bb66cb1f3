package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hupe1980/netslab/blobstore"
	"github.com/hupe1980/netslab/netlist"
)

// Save writes a snapshot of d to store under name and returns the name.
// An empty name is replaced by a generated design-<uuid>.nsnap.
func Save(ctx context.Context, store blobstore.Store, name string, d *netlist.Design, optFns ...Option) (string, error) {
	o := applyOptions(optFns)
	if name == "" {
		name = "design-" + uuid.NewString() + Extension
	}
	if name == blobstore.CurrentName {
		return "", fmt.Errorf("snapshot: %q is reserved", name)
	}

	var buf bytes.Buffer
	n, err := encode(ctx, &buf, d, o)
	if err != nil {
		return "", err
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return "", fmt.Errorf("snapshot: save %s: %w", name, err)
	}

	o.logger.LogAttrs(ctx, slog.LevelInfo, "snapshot saved",
		slog.String("name", name),
		slog.Int("bytes", n),
	)
	return name, nil
}

// Load reads the snapshot called name from store.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*netlist.Design, error) {
	o := applyOptions(optFns)

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %s: %w", name, err)
	}
	defer b.Close()

	data, err := blobstore.ReadAll(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %s: %w", name, err)
	}
	d, err := decode(ctx, bytes.NewReader(data), o)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load %s: %w", name, err)
	}

	o.logger.LogAttrs(ctx, slog.LevelInfo, "snapshot loaded",
		slog.String("name", name),
		slog.Int("bytes", len(data)),
	)
	return d, nil
}

// Commit points CURRENT at the snapshot called name, which must exist.
func Commit(ctx context.Context, store blobstore.Store, name string) error {
	b, err := store.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("snapshot: commit %s: %w", name, err)
	}
	b.Close()

	if err := store.Put(ctx, blobstore.CurrentName, []byte(name)); err != nil {
		return fmt.Errorf("snapshot: commit %s: %w", name, err)
	}
	return nil
}

// Current returns the name of the committed snapshot.
func Current(ctx context.Context, store blobstore.Store) (string, error) {
	data, err := blobstore.ReadFile(ctx, store, blobstore.CurrentName)
	if err != nil {
		return "", fmt.Errorf("snapshot: read %s: %w", blobstore.CurrentName, err)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", fmt.Errorf("%w: empty %s", ErrCorrupt, blobstore.CurrentName)
	}
	return name, nil
}

// LoadCurrent loads the committed snapshot and returns it with its name.
func LoadCurrent(ctx context.Context, store blobstore.Store, optFns ...Option) (*netlist.Design, string, error) {
	name, err := Current(ctx, store)
	if err != nil {
		return nil, "", err
	}
	d, err := Load(ctx, store, name, optFns...)
	if err != nil {
		return nil, "", err
	}
	return d, name, nil
}

// List returns the names of the snapshots in store that carry Extension.
func List(ctx context.Context, store blobstore.Store) ([]string, error) {
	names, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasSuffix(n, Extension) {
			out = append(out, n)
		}
	}
	return out, nil
}
