package netlist

import (
	"slices"
	"testing"

	"github.com/hupe1980/netslab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesign_InsertModule(t *testing.T) {
	d := NewDesign()
	defer d.Close()

	m, err := d.InsertModule("top")
	require.NoError(t, err)
	assert.Equal(t, "top", m.Name())

	_, err = d.InsertModule("top")
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = d.InsertModule("")
	assert.ErrorIs(t, err, ErrInvalidName)

	got, ok := d.Module("top")
	require.True(t, ok)
	assert.Same(t, m, got)

	i, ok := d.ModuleIndex("top")
	require.True(t, ok)
	assert.Same(t, m, d.ModuleAt(i))
	assert.Equal(t, 1, d.NumModules())
}

func TestDesign_RemoveModuleReusesIndex(t *testing.T) {
	d := NewDesign()
	defer d.Close()

	for _, name := range []string{"a", "b", "c"} {
		_, err := d.InsertModule(name)
		require.NoError(t, err)
	}
	assert.True(t, d.RemoveModule("b"))
	assert.False(t, d.RemoveModule("b"))
	_, ok := d.Module("b")
	assert.False(t, ok)

	_, err := d.InsertModule("d")
	require.NoError(t, err)
	i, _ := d.ModuleIndex("d")
	assert.Equal(t, 1, i)

	var names []string
	for _, m := range d.Modules() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"a", "d", "c"}, names)
}

func TestModule_Elements(t *testing.T) {
	d := NewDesign()
	defer d.Close()
	m, err := d.InsertModule("simple")
	require.NoError(t, err)

	_, err = m.InsertInput("inp1")
	require.NoError(t, err)
	_, err = m.InsertInput("inp2")
	require.NoError(t, err)
	_, err = m.InsertOutput("out")
	require.NoError(t, err)
	_, err = m.InsertWire("n1")
	require.NoError(t, err)

	_, err = m.InsertInput("inp1")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// Ports and wires live in separate scopes.
	_, err = m.InsertWire("out")
	require.NoError(t, err)

	_, g, err := m.InsertGate("u1", "NAND2_X1")
	require.NoError(t, err)
	require.NoError(t, g.Connect("a", "inp1"))
	require.NoError(t, g.Connect("b", "inp2"))
	require.NoError(t, g.Connect("o", "n1"))

	assert.Equal(t, 2, m.NumInputs())
	assert.Equal(t, 1, m.NumOutputs())
	assert.Equal(t, 2, m.NumWires())
	assert.Equal(t, 1, m.NumGates())

	p, ok := m.Input("inp2")
	require.True(t, ok)
	assert.Equal(t, "inp2", p.Name)
	_, ok = m.Output("inp2")
	assert.False(t, ok)
	w, ok := m.Wire("n1")
	require.True(t, ok)
	assert.Equal(t, "n1", w.Name)

	gi, ok := m.Index(KindGate, "u1")
	require.True(t, ok)
	assert.Equal(t, "NAND2_X1", m.Gates().At(gi).Cell)
	_, ok = m.Index(KindModule, "u1")
	assert.False(t, ok)

	assert.True(t, m.Declared("inp1"))
	assert.True(t, m.Declared("n1"))
	assert.False(t, m.Declared("n2"))

	assert.True(t, m.RemoveWire("n1"))
	assert.False(t, m.RemoveWire("n1"))
	assert.True(t, m.RemoveInput("inp1"))
	assert.True(t, m.RemoveOutput("out"))
	assert.True(t, m.RemoveGate("u1"))
	_, ok = m.Gate("u1")
	assert.False(t, ok)
	assert.Equal(t, 0, m.NumGates())
}

func TestGate_Connections(t *testing.T) {
	var g Gate
	g.Name = "u1"

	require.NoError(t, g.Connect("b", "n1"))
	require.NoError(t, g.Connect("a", "n1"))
	require.NoError(t, g.Connect("o", "n2"))
	assert.ErrorIs(t, g.Connect("a", "n3"), ErrDuplicateName)
	assert.ErrorIs(t, g.Connect("", "n3"), ErrInvalidName)

	net, ok := g.Net("a")
	require.True(t, ok)
	assert.Equal(t, "n1", net)
	assert.Equal(t, []string{"b", "a"}, g.Pins("n1"))
	assert.Equal(t, 3, g.NumConnections())

	var pins []string
	for pin := range g.Connections() {
		pins = append(pins, pin)
	}
	assert.Equal(t, []string{"a", "b", "o"}, pins)

	assert.True(t, g.Disconnect("b"))
	assert.False(t, g.Disconnect("b"))
	assert.Equal(t, []string{"a"}, g.Pins("n1"))
	assert.True(t, g.Disconnect("a"))
	assert.Empty(t, g.Pins("n1"))

	g.Destroy()
	assert.Equal(t, 0, g.NumConnections())
}

func TestDesign_CloseDestroysModuleTables(t *testing.T) {
	m := &netslab.BasicMetricsCollector{}
	d := NewDesign(netslab.WithMetricsCollector(m))

	top, err := d.InsertModule("top")
	require.NoError(t, err)
	_, err = top.InsertInput("a")
	require.NoError(t, err)
	gates := top.Gates()

	d.Close()
	d.Close()
	assert.True(t, gates.Closed())
	assert.Equal(t, 0, d.NumModules())

	_, err = d.InsertModule("again")
	assert.ErrorIs(t, err, netslab.ErrClosed)
}

func TestDesign_RemoveModuleClosesTables(t *testing.T) {
	d := NewDesign()
	defer d.Close()

	top, err := d.InsertModule("top")
	require.NoError(t, err)
	wires := top.Wires()
	require.True(t, d.RemoveModule("top"))
	assert.True(t, wires.Closed())
}

func TestModule_Stats(t *testing.T) {
	d := readString(t, simpleNetlist)
	defer d.Close()

	s := d.Stats()
	assert.Equal(t, 1, s.Modules)
	assert.Equal(t, 2, s.Inputs)
	assert.Equal(t, 1, s.Outputs)
	assert.Equal(t, 1, s.Wires)
	assert.Equal(t, 2, s.Gates)
	assert.Equal(t, 5, s.Connections)
	require.Len(t, s.PerModule, 1)
	assert.Equal(t, map[string]int{"NAND2_X1": 1, "INV_X1": 1}, s.PerModule[0].Cells)
}

func TestModule_Reindex(t *testing.T) {
	d := NewDesign()
	defer d.Close()
	m, err := d.InsertModule("top")
	require.NoError(t, err)
	_, err = m.InsertWire("n1")
	require.NoError(t, err)
	i, _ := m.Index(KindWire, "n1")

	m.Wires().At(i).Name = "n2"
	require.NoError(t, m.Reindex())
	_, ok := m.Wire("n2")
	assert.True(t, ok)
	_, ok = m.Wire("n1")
	assert.False(t, ok)

	_, err = m.InsertWire("n3")
	require.NoError(t, err)
	j, _ := m.Index(KindWire, "n3")
	m.Wires().At(j).Name = "n2"
	assert.ErrorIs(t, m.Reindex(), ErrDuplicateName)
}

func TestKind_String(t *testing.T) {
	kinds := []Kind{KindModule, KindInput, KindOutput, KindWire, KindGate, Kind(99)}
	var names []string
	for _, k := range kinds {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"module", "input", "output", "wire", "gate", "unknown"}, names)
	assert.True(t, slices.ContainsFunc(kinds, Kind.IsNet))
	assert.False(t, KindGate.IsNet())
}
