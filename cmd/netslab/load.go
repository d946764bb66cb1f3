package main

import (
	"context"
	"os"

	"github.com/hupe1980/netslab"
	"github.com/hupe1980/netslab/blobstore"
	"github.com/hupe1980/netslab/netlist"
	"github.com/hupe1980/netslab/snapshot"
	"github.com/spf13/cobra"
)

var (
	loadOutput string
	loadStats  bool
)

func init() {
	cmd := newLoadCmd()
	addStoreFlags(cmd)
	cmd.Flags().StringVarP(&loadOutput, "output", "o", "", "Write the netlist to a file instead of stdout")
	cmd.Flags().BoolVar(&loadStats, "stats", false, "Print statistics instead of the netlist")
	rootCmd.AddCommand(cmd)
}

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name|CURRENT>",
		Short: "Load a snapshot and write it back out as a netlist",
		Long: `The load command loads a snapshot, by name or through the CURRENT
pointer, and writes the design as structural Verilog.

Example:
  netslab load CURRENT --store ./snapshots
  netslab load design-1b4e28ba.nsnap --store ./snapshots -o top.v
  netslab load CURRENT --store ./snapshots --stats --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), args)
		},
	}
}

func runLoad(ctx context.Context, args []string) error {
	store, err := openStore(ctx, storeURI)
	if err != nil {
		return err
	}

	opts := []snapshot.Option{
		snapshot.WithLogger(logger()),
		snapshot.WithResourceController(controller()),
		snapshot.WithTableOptions(netslab.WithLogger(logger())),
	}

	var d *netlist.Design
	if args[0] == blobstore.CurrentName {
		d, _, err = snapshot.LoadCurrent(ctx, store, opts...)
	} else {
		d, err = snapshot.Load(ctx, store, args[0], opts...)
	}
	if err != nil {
		return err
	}
	defer d.Close()

	switch {
	case loadStats || jsonOut:
		printDesignStats(d.Stats())
		return nil
	case loadOutput != "":
		return netlist.WriteFile(loadOutput, d)
	default:
		return netlist.Write(os.Stdout, d)
	}
}
