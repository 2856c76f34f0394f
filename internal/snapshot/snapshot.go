// Package snapshot writes a vector's live elements to a compressed dump and
// reads it back. The layout exists for debugging with memctl and may change
// between versions.
//
// Layout: a 20-byte header followed by one zstd frame of element bytes.
//
//	0x00  [4]  magic "MKSN"
//	0x04  u16  version
//	0x06  u16  reserved
//	0x08  u32  element size
//	0x0C  u64  element count
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/mmfile"
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/slice"
	"github.com/joshuapare/memkit/mem/vec"
)

const (
	headerSize = 20
	version    = 1
)

var magic = []byte("MKSN")

var (
	// ErrFormat indicates a dump that is not a snapshot or is damaged.
	ErrFormat = errors.New("snapshot: bad format")

	// ErrVersion indicates a snapshot written by an unknown version.
	ErrVersion = errors.New("snapshot: unsupported version")
)

// Header describes a snapshot's contents.
type Header struct {
	ElemSize int
	Count    int
}

// Write dumps v's live elements to w.
func Write(w io.Writer, v *vec.Vector) error {
	hdr := make([]byte, headerSize)
	copy(hdr, magic)
	buf.PutUintLE(hdr[4:6], version)
	buf.PutUintLE(hdr[8:12], uint64(v.ElemSize()))
	buf.PutUintLE(hdr[12:20], uint64(v.Len()))
	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}

	// One frame with a known content size lets Read bound its decoder.
	zw, err := zstd.NewWriter(nil, zstd.WithZeroFrames(true))
	if err != nil {
		return fmt.Errorf("snapshot: zstd: %w", err)
	}
	defer zw.Close()
	if _, err := w.Write(zw.EncodeAll(v.Slice().Bytes(), nil)); err != nil {
		return fmt.Errorf("snapshot: write payload: %w", err)
	}
	return nil
}

// ReadHeader parses the fixed header at the start of data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic) {
		return Header{}, ErrFormat
	}
	if v := buf.U16LE(data[4:6]); v != version {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	elemSize := buf.U32LE(data[8:12])
	count := buf.U64LE(data[12:20])
	if elemSize == 0 || count > uint64(^uint(0)>>1) {
		return Header{}, fmt.Errorf("%w: elem size %d, count %d", ErrFormat, elemSize, count)
	}
	if _, err := buf.SpanBytes(int(count), int(elemSize)); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return Header{ElemSize: int(elemSize), Count: int(count)}, nil
}

// Read decodes a snapshot into a new vector allocated from a.
func Read(a alloc.Allocator, data []byte) (*vec.Vector, error) {
	hdr, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	// The payload may not decode past what the header declares. Frame windows
	// are a power of two of at least 1KB, so the limit allows that rounding.
	want := uint64(hdr.Count) * uint64(hdr.ElemSize)
	limit := min(max(2*want, zstd.MinWindowSize), 1<<63)
	zr, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(limit))
	if err != nil {
		return nil, fmt.Errorf("snapshot: zstd: %w", err)
	}
	defer zr.Close()

	payload, err := zr.DecodeAll(data[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	elems, err := slice.New(hdr.Count, hdr.ElemSize, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(payload) != len(elems.Bytes()) {
		return nil, fmt.Errorf("%w: payload %d bytes, header says %d", ErrFormat, len(payload), len(elems.Bytes()))
	}

	v, err := vec.New(a, hdr.ElemSize)
	if err != nil {
		return nil, err
	}
	if err := v.Reserve(hdr.Count); err != nil {
		_ = v.Free()
		return nil, err
	}
	if err := v.Extend(elems); err != nil {
		_ = v.Free()
		return nil, err
	}
	return v, nil
}

// Load maps the file at path and decodes it.
func Load(a alloc.Allocator, path string) (*vec.Vector, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return Read(a, data)
}
