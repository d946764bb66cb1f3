package netlist

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// PinRef names one gate pin.
type PinRef struct {
	Gate int    // index in the module's gate table
	Pin  string // cell pin name
}

type netRef struct {
	net string
	ref PinRef
}

// Connectivity maps every net a gate connects to onto the pins it reaches,
// sorted by gate index and then pin name.
//
// The gate table is scanned by up to workers goroutines (GOMAXPROCS when
// workers <= 0). The module must not be mutated until Connectivity returns.
func (m *Module) Connectivity(ctx context.Context, workers int) (map[string][]PinRef, error) {
	var mu sync.Mutex
	nets := make(map[string][]PinRef)

	err := m.gates.table.ForEachParallel(ctx, workers, func(_ context.Context, i int, g *Gate) error {
		refs := make([]netRef, 0, g.NumConnections())
		for pin, net := range g.pinToNet {
			refs = append(refs, netRef{net: net, ref: PinRef{Gate: i, Pin: pin}})
		}

		mu.Lock()
		for _, r := range refs {
			nets[r.net] = append(nets[r.net], r.ref)
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, refs := range nets {
		slices.SortFunc(refs, func(a, b PinRef) int {
			if c := cmp.Compare(a.Gate, b.Gate); c != 0 {
				return c
			}
			return cmp.Compare(a.Pin, b.Pin)
		})
	}
	return nets, nil
}

// UndeclaredNets returns the sorted names of nets that gates connect to but
// that are not declared as an input, output or wire.
func (m *Module) UndeclaredNets() []string {
	seen := make(map[string]struct{})
	for _, g := range m.gates.table.All() {
		for net := range g.netToPins {
			if !m.Declared(net) {
				seen[net] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for net := range seen {
		out = append(out, net)
	}
	slices.Sort(out)
	return out
}

// Validate reports every undeclared net as an error wrapping
// ErrUndeclaredNet.
func (m *Module) Validate() error {
	undeclared := m.UndeclaredNets()
	if len(undeclared) == 0 {
		return nil
	}
	errs := make([]error, 0, len(undeclared))
	for _, net := range undeclared {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUndeclaredNet, net))
	}
	return errors.Join(errs...)
}
