package netlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/netslab"
)

// ReadOption configures Read.
type ReadOption func(*readOptions)

type readOptions struct {
	logger        *netslab.Logger
	implicitWires bool
}

// WithLogger logs one debug record per module read.
func WithLogger(l *netslab.Logger) ReadOption {
	return func(o *readOptions) {
		if l == nil {
			l = netslab.NoopLogger()
		}
		o.logger = l
	}
}

// WithImplicitWires declares a wire for every net that a gate connects to
// but the module never declares, instead of leaving it to Validate.
func WithImplicitWires() ReadOption {
	return func(o *readOptions) {
		o.implicitWires = true
	}
}

// ReadFile parses the netlist at path into d.
func ReadFile(path string, d *Design, opts ...ReadOption) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Read(f, d, opts...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Read parses every module in r into d.
//
// Modules read before an error stay in d; the module being read when the
// error occurred is removed.
func Read(r io.Reader, d *Design, opts ...ReadOption) error {
	o := readOptions{logger: netslab.NoopLogger()}
	for _, fn := range opts {
		fn(&o)
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	p := &parser{lex: newLexer(src), design: d, opts: o}
	if err := p.advance(); err != nil {
		return err
	}
	for p.tok.kind != tokEOF {
		if err := p.module(); err != nil {
			if p.current != "" {
				d.RemoveModule(p.current)
			}
			return err
		}
	}
	return nil
}

type parser struct {
	lex     *lexer
	tok     token
	design  *Design
	opts    readOptions
	current string // module being read
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.tok.line, Msg: fmt.Sprintf(format, args...)}
}

// wrap turns a model error into a *ParseError on the current line.
func (p *parser) wrap(err error) error {
	pe := &ParseError{Line: p.tok.line, Msg: err.Error()}
	switch {
	case errors.Is(err, ErrDuplicateName):
		pe.Err = ErrDuplicateName
	case errors.Is(err, ErrInvalidName):
		pe.Err = ErrInvalidName
	case errors.Is(err, netslab.ErrAllocationFailed):
		return err
	}
	return pe
}

func (p *parser) expect(text string) error {
	if p.tok.kind != tokPunct || p.tok.text != text {
		return p.errorf("expected %q, found %s", text, p.tok)
	}
	return p.advance()
}

func (p *parser) ident(what string) (string, error) {
	if p.tok.kind != tokIdent {
		return "", p.errorf("expected %s name, found %s", what, p.tok)
	}
	if !p.tok.escaped {
		if _, kw := keywords[p.tok.text]; kw {
			return "", p.errorf("expected %s name, found keyword %q", what, p.tok.text)
		}
		if strings.HasPrefix(p.tok.text, "[") {
			return "", p.errorf("bus ranges are not supported")
		}
	}
	name := p.tok.text
	return name, p.advance()
}

func (p *parser) module() error {
	if !p.tok.is("module") {
		return p.errorf("expected \"module\", found %s", p.tok)
	}
	line := p.tok.line
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.ident("module")
	if err != nil {
		return err
	}
	m, err := p.design.InsertModule(name)
	if err != nil {
		return p.wrap(err)
	}
	p.current = name

	headerPorts, err := p.header(m)
	if err != nil {
		return err
	}
	if err := p.expect(";"); err != nil {
		return err
	}

	for !p.tok.is("endmodule") {
		if err := p.item(m); err != nil {
			return err
		}
	}
	if err := p.advance(); err != nil {
		return err
	}

	for _, port := range headerPorts {
		if !m.inputs.has(port) && !m.outputs.has(port) {
			return &ParseError{Line: line, Msg: fmt.Sprintf("port %q of module %q has no direction", port, name)}
		}
	}
	if p.opts.implicitWires {
		for _, net := range m.UndeclaredNets() {
			if _, err := m.InsertWire(net); err != nil {
				return err
			}
		}
	}
	p.current = ""

	p.opts.logger.LogAttrs(context.Background(), slog.LevelDebug, "module read",
		slog.String("module", name),
		slog.Int("inputs", m.NumInputs()),
		slog.Int("outputs", m.NumOutputs()),
		slog.Int("wires", m.NumWires()),
		slog.Int("gates", m.NumGates()),
	)
	return nil
}

// header parses the optional port list. Ports listed without a direction
// are returned and must be declared in the module body.
func (p *parser) header(m *Module) ([]string, error) {
	if !p.tok.is("(") {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var (
		ports []string
		dir   Kind
	)
	for !p.tok.is(")") {
		switch {
		case p.tok.is("input"):
			dir = KindInput
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		case p.tok.is("output"):
			dir = KindOutput
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		case p.tok.is("wire"):
			if dir == KindModule {
				return nil, p.errorf("net type before port direction")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		name, err := p.ident("port")
		if err != nil {
			return nil, err
		}
		if dir == KindModule {
			ports = append(ports, name)
		} else if err := p.declare(m, dir, name); err != nil {
			return nil, err
		}

		if p.tok.is(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else if !p.tok.is(")") {
			return nil, p.errorf("expected \",\" or \")\" in port list, found %s", p.tok)
		}
	}
	return ports, p.advance()
}

func (p *parser) declare(m *Module, k Kind, name string) error {
	var err error
	switch k {
	case KindInput:
		_, err = m.InsertInput(name)
	case KindOutput:
		_, err = m.InsertOutput(name)
	case KindWire:
		_, err = m.InsertWire(name)
	}
	if err != nil {
		return p.wrap(err)
	}
	return nil
}

func (p *parser) item(m *Module) error {
	switch {
	case p.tok.kind == tokEOF:
		return p.errorf("unexpected end of input in module %q, missing endmodule", m.name)
	case p.tok.is("input"):
		return p.declarations(m, KindInput)
	case p.tok.is("output"):
		return p.declarations(m, KindOutput)
	case p.tok.is("wire"):
		return p.declarations(m, KindWire)
	case p.tok.is("module"):
		return p.errorf("nested module in %q, missing endmodule", m.name)
	case p.tok.kind == tokPunct:
		return p.errorf("unexpected %s", p.tok)
	}
	if !p.tok.escaped {
		switch p.tok.text {
		case "assign", "reg", "always", "initial", "parameter", "localparam",
			"inout", "tri", "supply0", "supply1", "generate", "function", "task":
			return p.errorf("%q statements are not supported", p.tok.text)
		}
	}
	return p.instance(m)
}

func (p *parser) declarations(m *Module, k Kind) error {
	if err := p.advance(); err != nil {
		return err
	}
	if k != KindWire && p.tok.is("wire") {
		if err := p.advance(); err != nil {
			return err
		}
	}
	for {
		name, err := p.ident(k.String())
		if err != nil {
			return err
		}
		if err := p.declare(m, k, name); err != nil {
			return err
		}
		if p.tok.is(";") {
			return p.advance()
		}
		if err := p.expect(","); err != nil {
			return err
		}
	}
}

func (p *parser) instance(m *Module) error {
	cell, err := p.ident("cell")
	if err != nil {
		return err
	}
	if p.tok.is("#") {
		return p.errorf("parameterized instance of %q is not supported", cell)
	}
	name, err := p.ident("instance")
	if err != nil {
		return err
	}
	_, g, err := m.InsertGate(name, cell)
	if err != nil {
		return p.wrap(err)
	}
	if err := p.expect("("); err != nil {
		return err
	}

	for !p.tok.is(")") {
		if !p.tok.is(".") {
			return p.errorf("positional connections are not supported (instance %q)", name)
		}
		if err := p.advance(); err != nil {
			return err
		}
		pin, err := p.ident("pin")
		if err != nil {
			return err
		}
		if err := p.expect("("); err != nil {
			return err
		}
		if !p.tok.is(")") {
			net, err := p.ident("net")
			if err != nil {
				return err
			}
			if err := g.Connect(pin, net); err != nil {
				return p.wrap(err)
			}
		}
		if err := p.expect(")"); err != nil {
			return err
		}

		if p.tok.is(",") {
			if err := p.advance(); err != nil {
				return err
			}
		} else if !p.tok.is(")") {
			return p.errorf("expected \",\" or \")\" in connection list, found %s", p.tok)
		}
	}
	if err := p.advance(); err != nil {
		return err
	}
	return p.expect(";")
}
