package netlist

import (
	"fmt"

	"github.com/hupe1980/netslab"
)

// Module is a netlist module: its ports, wires and gate instances.
//
// Mutate a module through its methods. The tables returned by Inputs,
// Outputs, Wires and Gates are for lookups by index and iteration; removing
// from them directly leaves the name index stale until Reindex is called.
type Module struct {
	name    string
	inputs  scope[Port]
	outputs scope[Port]
	wires   scope[Wire]
	gates   scope[Gate]
}

func portName(p *Port) string { return p.Name }
func wireName(w *Wire) string { return w.Name }
func gateName(g *Gate) string { return g.Name }

func (m *Module) init(name string, opts []netslab.Option) {
	m.name = name
	m.inputs = newScope(KindInput, portName, opts)
	m.outputs = newScope(KindOutput, portName, opts)
	m.wires = newScope(KindWire, wireName, opts)
	m.gates = newScope(KindGate, gateName, opts)
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// InsertInput declares an input port and returns its index.
func (m *Module) InsertInput(name string) (int, error) {
	i, _, err := m.inputs.insert(name, func(p *Port) { p.Name = name })
	return i, err
}

// InsertOutput declares an output port and returns its index.
func (m *Module) InsertOutput(name string) (int, error) {
	i, _, err := m.outputs.insert(name, func(p *Port) { p.Name = name })
	return i, err
}

// InsertWire declares a wire and returns its index.
func (m *Module) InsertWire(name string) (int, error) {
	i, _, err := m.wires.insert(name, func(w *Wire) { w.Name = name })
	return i, err
}

// InsertGate instantiates cell as name. Connect its pins through the
// returned Gate.
func (m *Module) InsertGate(name, cell string) (int, *Gate, error) {
	if err := checkName("cell", cell); err != nil {
		return 0, nil, fmt.Errorf("gate %q: %w", name, err)
	}
	return m.gates.insert(name, func(g *Gate) {
		g.Name = name
		g.Cell = cell
	})
}

// RemoveInput removes the named input. Removing an unknown name is a no-op.
func (m *Module) RemoveInput(name string) bool { return m.inputs.remove(name) }

// RemoveOutput removes the named output.
func (m *Module) RemoveOutput(name string) bool { return m.outputs.remove(name) }

// RemoveWire removes the named wire.
func (m *Module) RemoveWire(name string) bool { return m.wires.remove(name) }

// RemoveGate removes the named gate instance and its connections.
func (m *Module) RemoveGate(name string) bool { return m.gates.remove(name) }

// Input returns the named input port.
func (m *Module) Input(name string) (*Port, bool) {
	_, p, ok := m.inputs.lookup(name)
	return p, ok
}

// Output returns the named output port.
func (m *Module) Output(name string) (*Port, bool) {
	_, p, ok := m.outputs.lookup(name)
	return p, ok
}

// Wire returns the named wire.
func (m *Module) Wire(name string) (*Wire, bool) {
	_, w, ok := m.wires.lookup(name)
	return w, ok
}

// Gate returns the named gate instance.
func (m *Module) Gate(name string) (*Gate, bool) {
	_, g, ok := m.gates.lookup(name)
	return g, ok
}

// Index returns the table index of the element of kind k called name.
func (m *Module) Index(k Kind, name string) (int, bool) {
	var (
		i  int
		ok bool
	)
	switch k {
	case KindInput:
		i, _, ok = m.inputs.lookup(name)
	case KindOutput:
		i, _, ok = m.outputs.lookup(name)
	case KindWire:
		i, _, ok = m.wires.lookup(name)
	case KindGate:
		i, _, ok = m.gates.lookup(name)
	}
	return i, ok
}

// Declared reports whether net is declared as an input, output or wire.
func (m *Module) Declared(net string) bool {
	return m.inputs.has(net) || m.outputs.has(net) || m.wires.has(net)
}

// NumInputs returns the number of input ports.
func (m *Module) NumInputs() int { return m.inputs.table.Len() }

// NumOutputs returns the number of output ports.
func (m *Module) NumOutputs() int { return m.outputs.table.Len() }

// NumWires returns the number of wires.
func (m *Module) NumWires() int { return m.wires.table.Len() }

// NumGates returns the number of gate instances.
func (m *Module) NumGates() int { return m.gates.table.Len() }

// Inputs returns the input port table.
func (m *Module) Inputs() *netslab.Table[Port] { return m.inputs.table }

// Outputs returns the output port table.
func (m *Module) Outputs() *netslab.Table[Port] { return m.outputs.table }

// Wires returns the wire table.
func (m *Module) Wires() *netslab.Table[Wire] { return m.wires.table }

// Gates returns the gate table.
func (m *Module) Gates() *netslab.Table[Gate] { return m.gates.table }

// Reindex rebuilds the name indices from the tables.
func (m *Module) Reindex() error {
	if err := m.inputs.reindex(); err != nil {
		return err
	}
	if err := m.outputs.reindex(); err != nil {
		return err
	}
	if err := m.wires.reindex(); err != nil {
		return err
	}
	return m.gates.reindex()
}

// Destroy closes the module's tables, destroying every port, wire and gate.
func (m *Module) Destroy() {
	m.inputs.close()
	m.outputs.close()
	m.wires.close()
	m.gates.close()
}
