package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := newCheckCmd()
	cmd.Flags().BoolVar(&implicitWires, "implicit-wires", false, "Declare undeclared nets as wires while reading")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <netlist.v>",
		Short: "Check that every connected net is declared",
		Long: `The check command reads a netlist and reports nets that gates connect
to without a matching input, output or wire declaration.

Example:
  netslab check top.v
  netslab check top.v --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
}

type checkResult struct {
	File       string              `json:"file"`
	Valid      bool                `json:"valid"`
	Undeclared map[string][]string `json:"undeclared,omitempty"`
}

var errCheckFailed = errors.New("check failed")

func runCheck(args []string) error {
	d, err := readDesign(args[0])
	if err != nil {
		return err
	}
	defer d.Close()

	result := checkResult{File: args[0], Undeclared: make(map[string][]string)}
	for _, m := range d.Modules() {
		if nets := m.UndeclaredNets(); len(nets) > 0 {
			result.Undeclared[m.Name()] = nets
		}
	}
	result.Valid = len(result.Undeclared) == 0

	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
	} else if result.Valid {
		printInfo("%s: ok\n", args[0])
	} else {
		for _, m := range d.Modules() {
			for _, net := range result.Undeclared[m.Name()] {
				printInfo("%s: module %s: undeclared net %s\n", args[0], m.Name(), net)
			}
		}
	}

	if !result.Valid {
		return fmt.Errorf("%w: %d module(s) with undeclared nets", errCheckFailed, len(result.Undeclared))
	}
	return nil
}
