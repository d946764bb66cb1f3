package netlist

import (
	"errors"
	"fmt"
	"iter"

	"github.com/hupe1980/netslab"
)

// Design is a collection of modules.
//
// Design is not safe for concurrent mutation; see netslab.Table.
type Design struct {
	name    string
	modules scope[Module]
	opts    []netslab.Option
}

func moduleName(m *Module) string { return m.name }

// NewDesign creates an empty design. opts apply to every table the design
// and its modules create; each table is additionally named after its kind.
func NewDesign(opts ...netslab.Option) *Design {
	return &Design{
		modules: newScope(KindModule, moduleName, opts),
		opts:    opts,
	}
}

// Name returns the design name, empty unless set.
func (d *Design) Name() string { return d.name }

// SetName names the design. Snapshots record the name.
func (d *Design) SetName(name string) { d.name = name }

// InsertModule creates an empty module.
func (d *Design) InsertModule(name string) (*Module, error) {
	_, m, err := d.modules.insert(name, func(m *Module) { m.init(name, d.opts) })
	return m, err
}

// Module returns the named module.
func (d *Design) Module(name string) (*Module, bool) {
	_, m, ok := d.modules.lookup(name)
	return m, ok
}

// ModuleIndex returns the table index of the named module.
func (d *Design) ModuleIndex(name string) (int, bool) {
	i, _, ok := d.modules.lookup(name)
	return i, ok
}

// ModuleAt returns the module at index i, or nil.
func (d *Design) ModuleAt(i int) *Module {
	return d.modules.table.At(i)
}

// RemoveModule removes the named module and everything it owns.
func (d *Design) RemoveModule(name string) bool {
	return d.modules.remove(name)
}

// NumModules returns the number of modules.
func (d *Design) NumModules() int {
	return d.modules.table.Len()
}

// Modules yields modules in index order.
func (d *Design) Modules() iter.Seq2[int, *Module] {
	return d.modules.table.All()
}

// ModuleTable returns the module table.
func (d *Design) ModuleTable() *netslab.Table[Module] {
	return d.modules.table
}

// Validate checks every module; see Module.Validate.
func (d *Design) Validate() error {
	var errs []error
	for _, m := range d.Modules() {
		if err := m.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("module %q: %w", m.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close destroys every module. Close is idempotent.
func (d *Design) Close() {
	d.modules.close()
}
