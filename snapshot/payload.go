package snapshot

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/netslab"
	"github.com/hupe1980/netslab/netlist"
)

// Payload layout, every integer a uvarint and every string length-prefixed:
//
//	design name
//	module table layout, live set
//	per live module, ascending:
//	    name
//	    inputs, outputs, wires, gates layouts
//	    per table: live set, then its live elements ascending
//
// A table layout is the index count followed by the free list. A live set is
// a length-prefixed roaring bitmap. Ports and wires store their name; gates
// store name, cell and their (pin, net) connections sorted by pin.

type encoder struct {
	buf []byte
}

func (e *encoder) putUvarint(v uint64) {
	e.buf = binary.AppendUvarint(e.buf, v)
}

func (e *encoder) putInt(v int) { e.putUvarint(uint64(v)) }

func (e *encoder) putString(s string) {
	e.putInt(len(s))
	e.buf = append(e.buf, s...)
}

func (e *encoder) putLayout(l netslab.Layout) {
	e.putInt(l.NumIndices)
	e.putInt(len(l.Free))
	for _, idx := range l.Free {
		e.putInt(idx)
	}
}

func (e *encoder) putLiveSet(rb *roaring.Bitmap) error {
	b, err := rb.ToBytes()
	if err != nil {
		return err
	}
	e.putInt(len(b))
	e.buf = append(e.buf, b...)
	return nil
}

func encodeElements[T any](e *encoder, t *netslab.Table[T], elem func(*encoder, *T)) error {
	if err := e.putLiveSet(t.LiveSet()); err != nil {
		return err
	}
	for v := range t.Values() {
		elem(e, v)
	}
	return nil
}

func encodePort(e *encoder, p *netlist.Port) { e.putString(p.Name) }

func encodeWire(e *encoder, w *netlist.Wire) { e.putString(w.Name) }

func encodeGate(e *encoder, g *netlist.Gate) {
	e.putString(g.Name)
	e.putString(g.Cell)
	e.putInt(g.NumConnections())
	for pin, net := range g.Connections() {
		e.putString(pin)
		e.putString(net)
	}
}

func encodeDesign(d *netlist.Design) ([]byte, error) {
	e := &encoder{}
	e.putString(d.Name())

	modules := d.ModuleTable()
	e.putLayout(modules.Layout())
	if err := e.putLiveSet(modules.LiveSet()); err != nil {
		return nil, err
	}

	for _, m := range d.Modules() {
		e.putString(m.Name())
		l := m.Layout()
		e.putLayout(l.Inputs)
		e.putLayout(l.Outputs)
		e.putLayout(l.Wires)
		e.putLayout(l.Gates)

		if err := encodeElements(e, m.Inputs(), encodePort); err != nil {
			return nil, err
		}
		if err := encodeElements(e, m.Outputs(), encodePort); err != nil {
			return nil, err
		}
		if err := encodeElements(e, m.Wires(), encodeWire); err != nil {
			return nil, err
		}
		if err := encodeElements(e, m.Gates(), encodeGate); err != nil {
			return nil, err
		}
	}
	return e.buf, nil
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) remaining() int { return len(d.buf) - d.off }

func (d *decoder) readUvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at offset %d", ErrCorrupt, d.off)
	}
	d.off += n
	return v, nil
}

// int reads a count that must not exceed limit.
func (d *decoder) readInt(limit int) (int, error) {
	v, err := d.readUvarint()
	if err != nil {
		return 0, err
	}
	if v > uint64(limit) {
		return 0, fmt.Errorf("%w: value %d exceeds %d at offset %d", ErrCorrupt, v, limit, d.off)
	}
	return int(v), nil
}

func (d *decoder) readBytes() ([]byte, error) {
	n, err := d.readInt(d.remaining())
	if err != nil {
		return nil, err
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) readString() (string, error) {
	b, err := d.readBytes()
	return string(b), err
}

// layout reads a table layout. Every live index is followed by at least one
// byte of element data, which bounds the index count by the input size.
func (d *decoder) readLayout() (netslab.Layout, error) {
	numIndices, err := d.readInt(maxIndices)
	if err != nil {
		return netslab.Layout{}, err
	}
	nfree, err := d.readInt(min(numIndices, d.remaining()))
	if err != nil {
		return netslab.Layout{}, err
	}
	free := make([]int, nfree)
	for i := range free {
		if free[i], err = d.readInt(numIndices); err != nil {
			return netslab.Layout{}, err
		}
	}
	if numIndices-nfree > d.remaining() {
		return netslab.Layout{}, fmt.Errorf("%w: %d live indices in %d bytes", ErrCorrupt, numIndices-nfree, d.remaining())
	}
	l := netslab.Layout{NumIndices: numIndices, Free: free}
	if err := l.Validate(); err != nil {
		return netslab.Layout{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return l, nil
}

func (d *decoder) readLiveSet() (*roaring.Bitmap, error) {
	b, err := d.readBytes()
	if err != nil {
		return nil, err
	}
	rb := roaring.New()
	if err := rb.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: live set: %v", ErrCorrupt, err)
	}
	return rb, nil
}

// maxIndices keeps every index representable in a live set.
const maxIndices = 1 << 32

// checkLiveSet reads a live set and compares it with the restored table.
func checkLiveSet[T any](d *decoder, kind netlist.Kind, t *netslab.Table[T]) error {
	rb, err := d.readLiveSet()
	if err != nil {
		return err
	}
	if !rb.Equals(t.LiveSet()) {
		return fmt.Errorf("%w: %s live set does not match layout", ErrCorrupt, kind)
	}
	return nil
}

func decodeElements[T any](d *decoder, kind netlist.Kind, t *netslab.Table[T], elem func(*decoder, *T) error) error {
	if err := checkLiveSet(d, kind, t); err != nil {
		return err
	}
	for i := range t.Indices() {
		if err := elem(d, t.At(i)); err != nil {
			return fmt.Errorf("%s %d: %w", kind, i, err)
		}
	}
	return nil
}

func decodePort(d *decoder, p *netlist.Port) (err error) {
	p.Name, err = d.readString()
	return err
}

func decodeWire(d *decoder, w *netlist.Wire) (err error) {
	w.Name, err = d.readString()
	return err
}

func decodeGate(d *decoder, g *netlist.Gate) error {
	var err error
	if g.Name, err = d.readString(); err != nil {
		return err
	}
	if g.Cell, err = d.readString(); err != nil {
		return err
	}
	n, err := d.readInt(d.remaining())
	if err != nil {
		return err
	}
	for range n {
		pin, err := d.readString()
		if err != nil {
			return err
		}
		net, err := d.readString()
		if err != nil {
			return err
		}
		if err := g.Connect(pin, net); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	return nil
}

func decodeModule(d *decoder, design *netlist.Design, i int) error {
	name, err := d.readString()
	if err != nil {
		return err
	}
	var l netlist.ModuleLayout
	for _, dst := range []*netslab.Layout{&l.Inputs, &l.Outputs, &l.Wires, &l.Gates} {
		if *dst, err = d.readLayout(); err != nil {
			return err
		}
	}

	m, err := design.RestoreModule(i, name, l)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := decodeElements(d, netlist.KindInput, m.Inputs(), decodePort); err != nil {
		return err
	}
	if err := decodeElements(d, netlist.KindOutput, m.Outputs(), decodePort); err != nil {
		return err
	}
	if err := decodeElements(d, netlist.KindWire, m.Wires(), decodeWire); err != nil {
		return err
	}
	if err := decodeElements(d, netlist.KindGate, m.Gates(), decodeGate); err != nil {
		return err
	}
	if err := m.Reindex(); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return nil
}

func decodeDesign(raw []byte, opts []netslab.Option) (*netlist.Design, error) {
	d := &decoder{buf: raw}
	name, err := d.readString()
	if err != nil {
		return nil, err
	}
	layout, err := d.readLayout()
	if err != nil {
		return nil, err
	}
	design, err := netlist.RestoreDesign(layout, opts...)
	if err != nil {
		return nil, err
	}
	design.SetName(name)

	err = checkLiveSet(d, netlist.KindModule, design.ModuleTable())
	if err == nil {
		for i := range design.ModuleTable().Indices() {
			if err = decodeModule(d, design, i); err != nil {
				err = fmt.Errorf("module %d: %w", i, err)
				break
			}
		}
	}
	if err == nil && d.remaining() != 0 {
		err = fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, d.remaining())
	}
	if err != nil {
		design.Close()
		return nil, err
	}
	return design, nil
}
