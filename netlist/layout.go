package netlist

import (
	"fmt"

	"github.com/hupe1980/netslab"
)

// ModuleLayout is the index layout of each of a module's tables.
type ModuleLayout struct {
	Inputs  netslab.Layout
	Outputs netslab.Layout
	Wires   netslab.Layout
	Gates   netslab.Layout
}

// Layout returns the module's table layouts.
func (m *Module) Layout() ModuleLayout {
	return ModuleLayout{
		Inputs:  m.inputs.table.Layout(),
		Outputs: m.outputs.table.Layout(),
		Wires:   m.wires.table.Layout(),
		Gates:   m.gates.table.Layout(),
	}
}

// RestoreDesign creates a design whose module table has the given layout.
// Every live module slot is a placeholder until RestoreModule fills it in.
func RestoreDesign(modules netslab.Layout, opts ...netslab.Option) (*Design, error) {
	s, err := restoreScope(KindModule, moduleName, modules, opts)
	if err != nil {
		return nil, err
	}
	return &Design{modules: s, opts: opts}, nil
}

// RestoreModule initializes the placeholder at index i as module name with
// restored tables. Elements start zero-valued; fill them in through the
// tables and call Module.Reindex once done.
func (d *Design) RestoreModule(i int, name string, layout ModuleLayout) (*Module, error) {
	m := d.modules.table.At(i)
	if m == nil {
		return nil, fmt.Errorf("%w: module slot %d", ErrNotFound, i)
	}
	if m.inputs.table != nil {
		return nil, fmt.Errorf("%w: module slot %d already restored", ErrDuplicateName, i)
	}
	if err := checkName(KindModule.String(), name); err != nil {
		return nil, err
	}
	if _, dup := d.modules.index[name]; dup {
		return nil, fmt.Errorf("%w: module %q", ErrDuplicateName, name)
	}

	restored := Module{name: name}
	var err error
	if restored.inputs, err = restoreScope(KindInput, portName, layout.Inputs, d.opts); err != nil {
		restored.Destroy()
		return nil, err
	}
	if restored.outputs, err = restoreScope(KindOutput, portName, layout.Outputs, d.opts); err != nil {
		restored.Destroy()
		return nil, err
	}
	if restored.wires, err = restoreScope(KindWire, wireName, layout.Wires, d.opts); err != nil {
		restored.Destroy()
		return nil, err
	}
	if restored.gates, err = restoreScope(KindGate, gateName, layout.Gates, d.opts); err != nil {
		restored.Destroy()
		return nil, err
	}

	*m = restored
	d.modules.index[name] = i
	return m, nil
}
