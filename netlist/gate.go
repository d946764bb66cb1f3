package netlist

import (
	"fmt"
	"iter"
	"slices"
)

// Port is a module input or output. A port also names the net it drives or
// is driven by.
type Port struct {
	Name string
}

// Wire is an internal net.
type Wire struct {
	Name string
}

// Gate is an instance of a library cell.
type Gate struct {
	Name string // instance name, e.g. u1
	Cell string // library cell, e.g. NAND2_X1

	pinToNet  map[string]string
	netToPins map[string][]string
}

// Connect attaches cell pin pin to net. A pin connects to at most one net;
// several pins of the same gate may share a net.
func (g *Gate) Connect(pin, net string) error {
	if err := checkName("pin", pin); err != nil {
		return fmt.Errorf("gate %q: %w", g.Name, err)
	}
	if err := checkName("net", net); err != nil {
		return fmt.Errorf("gate %q: %w", g.Name, err)
	}
	if g.pinToNet == nil {
		g.pinToNet = make(map[string]string)
		g.netToPins = make(map[string][]string)
	}
	if prev, ok := g.pinToNet[pin]; ok {
		return fmt.Errorf("%w: gate %q pin %q already connected to %q", ErrDuplicateName, g.Name, pin, prev)
	}
	g.pinToNet[pin] = net
	g.netToPins[net] = append(g.netToPins[net], pin)
	return nil
}

// Disconnect detaches pin. It reports whether the pin was connected.
func (g *Gate) Disconnect(pin string) bool {
	net, ok := g.pinToNet[pin]
	if !ok {
		return false
	}
	delete(g.pinToNet, pin)
	pins := slices.DeleteFunc(g.netToPins[net], func(p string) bool { return p == pin })
	if len(pins) == 0 {
		delete(g.netToPins, net)
	} else {
		g.netToPins[net] = pins
	}
	return true
}

// Net returns the net connected to pin.
func (g *Gate) Net(pin string) (string, bool) {
	net, ok := g.pinToNet[pin]
	return net, ok
}

// Pins returns the pins connected to net, in connection order.
func (g *Gate) Pins(net string) []string {
	return slices.Clone(g.netToPins[net])
}

// NumConnections returns the number of connected pins.
func (g *Gate) NumConnections() int {
	return len(g.pinToNet)
}

// Connections yields pin/net pairs sorted by pin name.
func (g *Gate) Connections() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		pins := make([]string, 0, len(g.pinToNet))
		for pin := range g.pinToNet {
			pins = append(pins, pin)
		}
		slices.Sort(pins)
		for _, pin := range pins {
			if !yield(pin, g.pinToNet[pin]) {
				return
			}
		}
	}
}

// Destroy drops the connection maps.
func (g *Gate) Destroy() {
	g.pinToNet = nil
	g.netToPins = nil
}
