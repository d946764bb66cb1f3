// Package mmap maps snapshot files read-only into memory.
//
//	m, err := mmap.Open("design.nsnap")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.Sequential)
//	header, err := m.Slice(0, 16)
//
// Unix platforms use mmap(2) and madvise(2). Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints.
//
// A Mapping may be read from many goroutines. Slices obtained from it are
// invalid once Close returns.
package mmap
