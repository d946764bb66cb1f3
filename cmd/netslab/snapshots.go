package main

import (
	"context"
	"errors"

	"github.com/hupe1980/netslab/blobstore"
	"github.com/hupe1980/netslab/snapshot"
	"github.com/spf13/cobra"
)

func init() {
	cmd := newSnapshotsCmd()
	addStoreFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newSnapshotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List the snapshots in a store",
		Long: `The snapshots command lists the snapshots in a store and marks the
CURRENT one with an asterisk.

Example:
  netslab snapshots --store ./snapshots`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshots(cmd.Context())
		},
	}
}

type snapshotsResult struct {
	Current   string   `json:"current,omitempty"`
	Snapshots []string `json:"snapshots"`
}

func runSnapshots(ctx context.Context) error {
	store, err := openStore(ctx, storeURI)
	if err != nil {
		return err
	}

	names, err := snapshot.List(ctx, store)
	if err != nil {
		return err
	}
	current, err := snapshot.Current(ctx, store)
	if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return err
	}

	if jsonOut {
		return printJSON(snapshotsResult{Current: current, Snapshots: names})
	}
	for _, name := range names {
		mark := " "
		if name == current {
			mark = "*"
		}
		printInfo("%s %s\n", mark, name)
	}
	return nil
}
