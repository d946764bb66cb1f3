//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

var madvise = [...]int{
	Normal:     unix.MADV_NORMAL,
	Sequential: unix.MADV_SEQUENTIAL,
	Random:     unix.MADV_RANDOM,
	WillNeed:   unix.MADV_WILLNEED,
}

// osAdvise ignores EINVAL, which some kernels report for unaligned ranges.
func osAdvise(data []byte, a Advice) error {
	if err := unix.Madvise(data, madvise[a]); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
