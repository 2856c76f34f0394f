package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/mem/slice"
	"github.com/joshuapare/memkit/mem/view"
)

// encodeElement packs an unsigned integer into an elemSize-byte little-endian
// element. elemSize must be 1, 2, 4 or 8.
func encodeElement(arg string, elemSize int) (view.View, error) {
	n, err := strconv.ParseUint(arg, 0, 64)
	if err != nil {
		return view.View{}, fmt.Errorf("invalid value %q: %w", arg, err)
	}
	b := make([]byte, elemSize)
	if !buf.PutUintLE(b, n) {
		return view.View{}, fmt.Errorf("unsupported element size %d (want 1, 2, 4 or 8)", elemSize)
	}
	if elemSize < 8 && n>>(8*uint(elemSize)) != 0 {
		return view.View{}, fmt.Errorf("value %d does not fit in %d bytes", n, elemSize)
	}
	return view.New(b, elemSize), nil
}

// formatElements renders integer-width elements as decimals and anything else
// as hex.
func formatElements(s slice.Slice) []string {
	out := make([]string, 0, s.Len())
	for _, v := range s.All() {
		if n, ok := buf.UintLE(v.Bytes()); ok {
			out = append(out, strconv.FormatUint(n, 10))
			continue
		}
		out = append(out, hex.EncodeToString(v.Bytes()))
	}
	return out
}
