//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Map maps the file at path read-only and returns its contents with a
// cleanup function that unmaps it. The bytes must not be used after cleanup.
func Map(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close() // the mapping outlives the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: map %s: %w", path, err)
	}
	unmapped := false
	cleanup := func() error {
		if unmapped {
			return nil
		}
		err := unix.Munmap(data)
		if err != nil && !errors.Is(err, unix.EINVAL) {
			return err
		}
		unmapped = true
		return nil
	}
	return data, cleanup, nil
}
