package netlist

import (
	"fmt"

	"github.com/hupe1980/netslab"
)

// scope is a table plus the name index that resolves names to its indices.
type scope[T any] struct {
	kind   Kind
	table  *netslab.Table[T]
	index  map[string]int
	nameOf func(*T) string
}

func tableOptions(kind Kind, opts []netslab.Option) []netslab.Option {
	out := make([]netslab.Option, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, netslab.WithName(kind.String()))
}

func newScope[T any](kind Kind, nameOf func(*T) string, opts []netslab.Option) scope[T] {
	return scope[T]{
		kind:   kind,
		table:  netslab.New[T](tableOptions(kind, opts)...),
		index:  make(map[string]int),
		nameOf: nameOf,
	}
}

func restoreScope[T any](kind Kind, nameOf func(*T) string, layout netslab.Layout, opts []netslab.Option) (scope[T], error) {
	tbl, err := netslab.Restore[T](layout, tableOptions(kind, opts)...)
	if err != nil {
		return scope[T]{}, fmt.Errorf("restore %s table: %w", kind, err)
	}
	return scope[T]{
		kind:   kind,
		table:  tbl,
		index:  make(map[string]int, tbl.Len()),
		nameOf: nameOf,
	}, nil
}

// checkName rejects names an escaped identifier cannot spell: empty ones
// and ones containing whitespace.
func checkName(what, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", ErrInvalidName, what)
	}
	for i := 0; i < len(name); i++ {
		if isSpace(name[i]) {
			return fmt.Errorf("%w: %s %q contains whitespace", ErrInvalidName, what, name)
		}
	}
	return nil
}

func (s *scope[T]) insert(name string, init func(*T)) (int, *T, error) {
	if err := checkName(s.kind.String(), name); err != nil {
		return 0, nil, err
	}
	if _, dup := s.index[name]; dup {
		return 0, nil, fmt.Errorf("%w: %s %q", ErrDuplicateName, s.kind, name)
	}
	i, err := s.table.InsertFunc(init)
	if err != nil {
		return 0, nil, fmt.Errorf("insert %s %q: %w", s.kind, name, err)
	}
	s.index[name] = i
	return i, s.table.At(i), nil
}

func (s *scope[T]) remove(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	delete(s.index, name)
	return s.table.Remove(i)
}

func (s *scope[T]) lookup(name string) (int, *T, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, nil, false
	}
	return i, s.table.At(i), true
}

func (s *scope[T]) has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// reindex rebuilds the name index from the table contents.
func (s *scope[T]) reindex() error {
	index := make(map[string]int, s.table.Len())
	for i, v := range s.table.All() {
		name := s.nameOf(v)
		if err := checkName(s.kind.String(), name); err != nil {
			return fmt.Errorf("%s at index %d: %w", s.kind, i, err)
		}
		if _, dup := index[name]; dup {
			return fmt.Errorf("%w: %s %q", ErrDuplicateName, s.kind, name)
		}
		index[name] = i
	}
	s.index = index
	return nil
}

func (s *scope[T]) close() {
	if s.table != nil {
		s.table.Close()
	}
	s.index = nil
}
