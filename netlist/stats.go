package netlist

// ModuleStats summarizes a module.
type ModuleStats struct {
	Name        string         `json:"name"`
	Inputs      int            `json:"inputs"`
	Outputs     int            `json:"outputs"`
	Wires       int            `json:"wires"`
	Gates       int            `json:"gates"`
	Connections int            `json:"connections"`
	Cells       map[string]int `json:"cells"` // instances per library cell
}

// DesignStats summarizes a design.
type DesignStats struct {
	Name        string        `json:"name,omitempty"`
	Modules     int           `json:"modules"`
	Inputs      int           `json:"inputs"`
	Outputs     int           `json:"outputs"`
	Wires       int           `json:"wires"`
	Gates       int           `json:"gates"`
	Connections int           `json:"connections"`
	PerModule   []ModuleStats `json:"per_module"`
}

// Stats returns the module's element counts.
func (m *Module) Stats() ModuleStats {
	s := ModuleStats{
		Name:    m.name,
		Inputs:  m.NumInputs(),
		Outputs: m.NumOutputs(),
		Wires:   m.NumWires(),
		Gates:   m.NumGates(),
		Cells:   make(map[string]int),
	}
	for _, g := range m.gates.table.All() {
		s.Connections += g.NumConnections()
		s.Cells[g.Cell]++
	}
	return s
}

// Stats returns per-module and total element counts, modules in index order.
func (d *Design) Stats() DesignStats {
	s := DesignStats{Name: d.name, Modules: d.NumModules()}
	for _, m := range d.Modules() {
		ms := m.Stats()
		s.Inputs += ms.Inputs
		s.Outputs += ms.Outputs
		s.Wires += ms.Wires
		s.Gates += ms.Gates
		s.Connections += ms.Connections
		s.PerModule = append(s.PerModule, ms)
	}
	return s
}
