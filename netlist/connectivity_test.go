package netlist

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_Connectivity(t *testing.T) {
	d := readString(t, simpleNetlist)
	defer d.Close()
	m, _ := d.Module("simple")

	conn, err := m.Connectivity(context.Background(), 2)
	require.NoError(t, err)

	u1, _ := m.Index(KindGate, "u1")
	u2, _ := m.Index(KindGate, "u2")
	assert.Equal(t, []PinRef{{Gate: u1, Pin: "o"}, {Gate: u2, Pin: "a"}}, conn["n1"])
	assert.Equal(t, []PinRef{{Gate: u1, Pin: "a"}}, conn["inp1"])
	assert.Equal(t, []PinRef{{Gate: u2, Pin: "o"}}, conn["out"])
	assert.Len(t, conn, 4)
}

func TestModule_ConnectivityLarge(t *testing.T) {
	var b strings.Builder
	b.WriteString("module chain (in, out);\ninput in;\noutput out;\n")
	const n = 500
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "wire n%d;\n", i)
	}
	b.WriteString("BUF b_in (.A(in), .Z(n0));\n")
	for i := 0; i < n-1; i++ {
		fmt.Fprintf(&b, "INV u%d (.A(n%d), .ZN(n%d));\n", i, i, i+1)
	}
	fmt.Fprintf(&b, "BUF b_out (.A(n%d), .Z(out));\nendmodule\n", n-1)

	d := readString(t, b.String())
	defer d.Close()
	m, _ := d.Module("chain")
	require.NoError(t, m.Validate())

	serial, err := m.Connectivity(context.Background(), 1)
	require.NoError(t, err)
	parallel, err := m.Connectivity(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)

	for i := 0; i < n; i++ {
		assert.Len(t, parallel[fmt.Sprintf("n%d", i)], 2)
	}
}

func TestModule_ConnectivityCanceled(t *testing.T) {
	d := readString(t, simpleNetlist)
	defer d.Close()
	m, _ := d.Module("simple")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Connectivity(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModule_Validate(t *testing.T) {
	d := NewDesign()
	defer d.Close()
	m, err := d.InsertModule("m")
	require.NoError(t, err)
	_, g, err := m.InsertGate("u1", "AND2")
	require.NoError(t, err)
	require.NoError(t, g.Connect("A", "x"))
	require.NoError(t, g.Connect("B", "y"))

	err = d.Validate()
	assert.ErrorIs(t, err, ErrUndeclaredNet)
	assert.Contains(t, err.Error(), `"x"`)
	assert.Contains(t, err.Error(), `"y"`)

	_, err = m.InsertInput("x")
	require.NoError(t, err)
	_, err = m.InsertWire("y")
	require.NoError(t, err)
	assert.NoError(t, d.Validate())
}
