package main

import (
	"context"

	"github.com/hupe1980/netslab/snapshot"
	"github.com/spf13/cobra"
)

var (
	saveName        string
	saveCompression string
	saveCommit      bool
)

func init() {
	cmd := newSaveCmd()
	addStoreFlags(cmd)
	cmd.Flags().StringVar(&saveName, "name", "", "Snapshot name (default design-<uuid>.nsnap)")
	cmd.Flags().StringVar(&saveCompression, "compression", "zstd", "Payload compression: none, lz4 or zstd")
	cmd.Flags().BoolVar(&saveCommit, "commit", false, "Point CURRENT at the new snapshot")
	cmd.Flags().BoolVar(&implicitWires, "implicit-wires", false, "Declare undeclared nets as wires while reading")
	rootCmd.AddCommand(cmd)
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <netlist.v>",
		Short: "Read a netlist and save it as a snapshot",
		Long: `The save command reads a netlist and stores a snapshot of it. With
--commit the snapshot also becomes the CURRENT one.

Example:
  netslab save top.v --store ./snapshots --commit
  netslab save top.v --store s3://my-bucket/designs --ddb-table commits
  netslab save top.v --store minio://localhost:9000/designs --compression lz4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd.Context(), args)
		},
	}
}

type saveResult struct {
	Name      string `json:"name"`
	Committed bool   `json:"committed"`
}

func runSave(ctx context.Context, args []string) error {
	compression, err := snapshot.ParseCompression(saveCompression)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, storeURI)
	if err != nil {
		return err
	}

	d, err := readDesign(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	name, err := snapshot.Save(ctx, store, saveName, d,
		snapshot.WithCompression(compression),
		snapshot.WithLogger(logger()),
		snapshot.WithResourceController(controller()),
	)
	if err != nil {
		return err
	}
	if saveCommit {
		if err := snapshot.Commit(ctx, store, name); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(saveResult{Name: name, Committed: saveCommit})
	}
	printInfo("%s\n", name)
	return nil
}
