package main

import (
	"maps"
	"slices"

	"github.com/hupe1980/netslab/netlist"
	"github.com/spf13/cobra"
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().BoolVar(&implicitWires, "implicit-wires", false, "Declare undeclared nets as wires while reading")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <netlist.v>",
		Short: "Show module and cell statistics",
		Long: `The stats command reads a netlist and prints the number of ports,
wires, gates and connections per module, plus the cell usage.

Example:
  netslab stats top.v
  netslab stats top.v --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
}

func runStats(args []string) error {
	d, err := readDesign(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	printDesignStats(d.Stats())
	return nil
}

func printDesignStats(s netlist.DesignStats) {
	if jsonOut {
		_ = printJSON(s)
		return
	}

	printInfo("Design: %s\n", s.Name)
	printInfo("  modules:     %d\n", s.Modules)
	printInfo("  inputs:      %d\n", s.Inputs)
	printInfo("  outputs:     %d\n", s.Outputs)
	printInfo("  wires:       %d\n", s.Wires)
	printInfo("  gates:       %d\n", s.Gates)
	printInfo("  connections: %d\n", s.Connections)

	for _, m := range s.PerModule {
		printInfo("\nModule %s: %d in, %d out, %d wires, %d gates\n",
			m.Name, m.Inputs, m.Outputs, m.Wires, m.Gates)
		for _, cell := range slices.Sorted(maps.Keys(m.Cells)) {
			printInfo("  %-16s %d\n", cell, m.Cells[cell])
		}
	}
}
