package netlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Write emits d as structural Verilog that Read accepts. Modules, ports,
// wires and gates appear in index order.
func Write(w io.Writer, d *Design) error {
	bw := bufio.NewWriter(w)
	first := true
	for _, m := range d.Modules() {
		if !first {
			bw.WriteByte('\n')
		}
		first = false
		writeModule(bw, m)
	}
	return bw.Flush()
}

// WriteFile writes d to path, replacing any existing file.
func WriteFile(path string, d *Design) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeModule(w *bufio.Writer, m *Module) {
	var ports []string
	for _, p := range m.inputs.table.All() {
		ports = append(ports, ident(p.Name))
	}
	for _, p := range m.outputs.table.All() {
		ports = append(ports, ident(p.Name))
	}
	fmt.Fprintf(w, "module %s (%s);\n", ident(m.name), strings.Join(ports, ", "))

	for _, p := range m.inputs.table.All() {
		fmt.Fprintf(w, "  input %s;\n", ident(p.Name))
	}
	for _, p := range m.outputs.table.All() {
		fmt.Fprintf(w, "  output %s;\n", ident(p.Name))
	}
	for _, wire := range m.wires.table.All() {
		fmt.Fprintf(w, "  wire %s;\n", ident(wire.Name))
	}
	for _, g := range m.gates.table.All() {
		conns := make([]string, 0, g.NumConnections())
		for pin, net := range g.Connections() {
			conns = append(conns, fmt.Sprintf(".%s(%s)", ident(pin), ident(net)))
		}
		fmt.Fprintf(w, "  %s %s (%s);\n", ident(g.Cell), ident(g.Name), strings.Join(conns, ", "))
	}
	w.WriteString("endmodule\n")
}

// ident escapes names the lexer would not read back as one identifier.
func ident(name string) string {
	if _, kw := keywords[name]; kw {
		return `\` + name + " "
	}
	if strings.HasPrefix(name, "[") {
		return `\` + name + " "
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isSpace(c) || isPunct(c) || c == '\\' || c == '/' {
			return `\` + name + " "
		}
	}
	return name
}
