package main

import (
	"path/filepath"
	"strings"

	"github.com/hupe1980/netslab"
	"github.com/hupe1980/netslab/netlist"
)

var implicitWires bool

// readDesign reads a netlist file into a new design named after the file.
func readDesign(path string) (*netlist.Design, error) {
	log := logger()
	d := netlist.NewDesign(netslab.WithLogger(log))

	opts := []netlist.ReadOption{netlist.WithLogger(log)}
	if implicitWires {
		opts = append(opts, netlist.WithImplicitWires())
	}
	if err := netlist.ReadFile(path, d, opts...); err != nil {
		d.Close()
		return nil, err
	}
	d.SetName(designName(path))
	return d, nil
}

// designName is the file name without directory and extension.
func designName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
