package netlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/netslab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleNetlist = `
// simple.v
module simple (
  inp1,
  inp2,
  out
);

/* primary inputs */
input inp1, inp2;
output out;

wire n1;

NAND2_X1 u1 ( .a(inp1), .b(inp2), .o(n1) );
INV_X1 u2 ( .a(n1), .o(out) );

endmodule
`

func readString(t *testing.T, src string, opts ...ReadOption) *Design {
	t.Helper()
	d := NewDesign()
	require.NoError(t, Read(strings.NewReader(src), d, opts...))
	return d
}

func TestRead_Simple(t *testing.T) {
	d := readString(t, simpleNetlist)
	defer d.Close()

	m, ok := d.Module("simple")
	require.True(t, ok)
	assert.Equal(t, 2, m.NumInputs())
	assert.Equal(t, 1, m.NumOutputs())
	assert.Equal(t, 1, m.NumWires())
	assert.Equal(t, 2, m.NumGates())

	u1, ok := m.Gate("u1")
	require.True(t, ok)
	assert.Equal(t, "NAND2_X1", u1.Cell)
	net, _ := u1.Net("o")
	assert.Equal(t, "n1", net)
	assert.NoError(t, d.Validate())
}

func TestRead_ANSIHeaderAndEscapedNames(t *testing.T) {
	src := `module top (input a, b, output wire \y[0] );
  wire \n.1 ;
  BUF_X1 \u/buf ( .A(a), .Z(\n.1 ) );
  AND2_X1 u2 ( .A1(\n.1 ), .A2(b), .ZN(\y[0] ), .NC() );
endmodule`
	d := readString(t, src)
	defer d.Close()

	m, _ := d.Module("top")
	_, ok := m.Input("b")
	assert.True(t, ok)
	_, ok = m.Output("y[0]")
	assert.True(t, ok)
	g, ok := m.Gate("u/buf")
	require.True(t, ok)
	net, _ := g.Net("Z")
	assert.Equal(t, "n.1", net)

	u2, _ := m.Gate("u2")
	_, ok = u2.Net("NC")
	assert.False(t, ok, "empty connection leaves the pin unconnected")
	assert.NoError(t, m.Validate())
}

func TestRead_MultipleModules(t *testing.T) {
	src := simpleNetlist + `
module other ( x );
  output x;
  TIEHI_X1 t0 ( .Z(x) );
endmodule
`
	d := readString(t, src)
	defer d.Close()
	assert.Equal(t, 2, d.NumModules())
	_, ok := d.Module("other")
	assert.True(t, ok)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		wantErr error
	}{
		{"positional", "module m (a);\ninput a;\nINV u1 (a);\nendmodule", 3, ErrSyntax},
		{"missing endmodule", "module m;\nwire a;\n", 3, ErrSyntax},
		{"missing semicolon", "module m;\nwire a\nwire b;\nendmodule", 3, ErrSyntax},
		{"duplicate wire", "module m;\nwire a;\nwire a;\nendmodule", 3, ErrDuplicateName},
		{"duplicate gate", "module m;\nINV u1 ();\nINV u1 ();\nendmodule", 3, ErrDuplicateName},
		{"duplicate pin", "module m;\nINV u1 (.a(x), .a(y));\nendmodule", 2, ErrDuplicateName},
		{"duplicate module", "module m;\nendmodule\nmodule m;\nendmodule", 3, ErrDuplicateName},
		{"port without direction", "module m (a);\nwire a;\nendmodule", 1, ErrSyntax},
		{"bus", "module m;\ninput [3:0] a;\nendmodule", 2, ErrSyntax},
		{"assign", "module m;\nassign a = b;\nendmodule", 2, ErrSyntax},
		{"parameterized", "module m;\nDFF #(1) u1 ();\nendmodule", 2, ErrSyntax},
		{"unterminated comment", "module m;\n/* open\n", 2, ErrSyntax},
		{"keyword as name", "module m;\nwire input;\nendmodule", 2, ErrSyntax},
		{"garbage", "wire a;", 1, ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDesign()
			defer d.Close()

			err := Read(strings.NewReader(tt.src), d)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestRead_FailedModuleIsRemoved(t *testing.T) {
	src := simpleNetlist + "module broken;\nINV u1 (x);\nendmodule\n"
	d := NewDesign()
	defer d.Close()

	err := Read(strings.NewReader(src), d)
	require.Error(t, err)
	_, ok := d.Module("simple")
	assert.True(t, ok)
	_, ok = d.Module("broken")
	assert.False(t, ok)
}

func TestRead_ImplicitWires(t *testing.T) {
	src := "module m (a, y);\ninput a;\noutput y;\nINV u1 (.a(a), .o(n1));\nINV u2 (.a(n1), .o(y));\nendmodule"

	d := readString(t, src)
	m, _ := d.Module("m")
	assert.ErrorIs(t, d.Validate(), ErrUndeclaredNet)
	assert.Equal(t, []string{"n1"}, m.UndeclaredNets())
	d.Close()

	d = readString(t, src, WithImplicitWires(), WithLogger(netslab.NoopLogger()))
	defer d.Close()
	m, _ = d.Module("m")
	_, ok := m.Wire("n1")
	assert.True(t, ok)
	assert.NoError(t, d.Validate())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simple.v")
	require.NoError(t, os.WriteFile(path, []byte(simpleNetlist), 0o644))

	d := NewDesign()
	defer d.Close()
	require.NoError(t, ReadFile(path, d))
	assert.Equal(t, 1, d.NumModules())

	err := ReadFile(filepath.Join(t.TempDir(), "missing.v"), d)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
