package netlist

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_RoundTrip(t *testing.T) {
	src := simpleNetlist + `
module esc (input \a.b , output \module );
  BUF_X1 \u/1 ( .A(\a.b ), .Z(\module ) );
endmodule
`
	d := readString(t, src)
	defer d.Close()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))

	back := readString(t, buf.String())
	defer back.Close()
	assert.Equal(t, d.Stats(), back.Stats())

	m, ok := back.Module("esc")
	require.True(t, ok)
	g, ok := m.Gate("u/1")
	require.True(t, ok)
	net, _ := g.Net("Z")
	assert.Equal(t, "module", net)

	var again bytes.Buffer
	require.NoError(t, Write(&again, back))
	assert.Equal(t, buf.String(), again.String())
}

func TestWrite_Format(t *testing.T) {
	d := readString(t, simpleNetlist)
	defer d.Close()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	want := `module simple (inp1, inp2, out);
  input inp1;
  input inp2;
  output out;
  wire n1;
  NAND2_X1 u1 (.a(inp1), .b(inp2), .o(n1));
  INV_X1 u2 (.a(n1), .o(out));
endmodule
`
	assert.Equal(t, want, buf.String())
}

func TestWriteFile(t *testing.T) {
	d := readString(t, simpleNetlist)
	defer d.Close()

	path := filepath.Join(t.TempDir(), "out.v")
	require.NoError(t, WriteFile(path, d))

	back := NewDesign()
	defer back.Close()
	require.NoError(t, ReadFile(path, back))
	assert.Equal(t, d.Stats(), back.Stats())
}

func TestWrite_RejectsWhitespaceNames(t *testing.T) {
	d := NewDesign()
	defer d.Close()
	m, err := d.InsertModule("top")
	require.NoError(t, err)

	_, err = m.InsertWire("a b")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = m.InsertInput("a\tb")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, _, err = m.InsertGate("u 1", "INV_X1")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, _, err = m.InsertGate("u1", "INV X1")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = d.InsertModule("my top")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Equal(t, 0, m.NumGates())

	_, g, err := m.InsertGate("u1", "INV_X1")
	require.NoError(t, err)
	assert.ErrorIs(t, g.Connect("a b", "n1"), ErrInvalidName)
	assert.ErrorIs(t, g.Connect("a", "n\n1"), ErrInvalidName)
	assert.Equal(t, 0, g.NumConnections())

	m.Gates().At(0).Name = "u 1"
	assert.ErrorIs(t, m.Reindex(), ErrInvalidName)
	m.Gates().At(0).Name = "u1"
	require.NoError(t, m.Reindex())

	// Everything the model accepts reads back.
	_, err = m.InsertWire(`a/b.c[0]`)
	require.NoError(t, err)
	require.NoError(t, g.Connect("A", `a/b.c[0]`))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	back := readString(t, buf.String())
	defer back.Close()
	assert.Equal(t, d.Stats(), back.Stats())
}

func TestWrite_SkipsRemovedModules(t *testing.T) {
	d := readString(t, simpleNetlist+"\nmodule other ();\nendmodule\n")
	defer d.Close()
	require.True(t, d.RemoveModule("simple"))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	assert.Equal(t, "module other ();\nendmodule\n", buf.String())

	_, err := d.InsertModule("third")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, Write(&buf, d))
	assert.Equal(t, "module third ();\nendmodule\n\nmodule other ();\nendmodule\n", buf.String())
}
