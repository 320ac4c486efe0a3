// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// The binary format is a single little-endian stream:
//
//	magic   4 B          "dary"
//	version 2 B LE       currently 1
//	M       8 B LE       number of slots
//	BASE    M * 4 B LE   int32, negative = leaf
//	CHECK   M * 4 B LE   uint32, parent slot, 0 = free
//	L       8 B LE       number of value lists
//	L times:
//	  n     4 B LE       values in this list
//	  n times: 4 B LE blob length, then the blob
//
// Widths and endianness are part of the contract, a dump loads back
// byte-for-byte identical.
var magic = [4]byte{'d', 'a', 'r', 'y'}

const formatVersion = 1

// These errors can be returned by [Load]. Errors are wrapped with
// fmt.Errorf, use [errors.Is] to check for the underlying error.
var (
	// ErrFormat, bad magic, version mismatch, length inconsistency
	// or a truncated stream.
	ErrFormat = errors.New("invalid double array format")

	// ErrDecode, a payload blob failed to decode.
	ErrDecode = errors.New("payload decode failed")
)

// leWriter latches the first write error, keeps the happy path flat.
type leWriter struct {
	w   *bufio.Writer
	err error
}

func (e *leWriter) write(v any) {
	if e.err == nil {
		e.err = binary.Write(e.w, binary.LittleEndian, v)
	}
}

func (e *leWriter) writeBytes(p []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(p)
	}
}

// Dump writes the double array to w in the binary format, payloads are
// encoded with codec. The same codec must be used to load the stream
// back.
func (d *DoubleArray[V]) Dump(w io.Writer, codec Codec[V]) error {
	lw := &leWriter{w: bufio.NewWriter(w)}

	lw.writeBytes(magic[:])
	lw.write(uint16(formatVersion))
	lw.write(uint64(len(d.base)))
	lw.write(d.base)
	lw.write(d.check)
	lw.write(uint64(len(d.values)))

	for _, list := range d.values {
		lw.write(uint32(len(list)))
		for _, v := range list {
			blob, err := codec.Encode(v)
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}
			if uint64(len(blob)) > math.MaxUint32 {
				return fmt.Errorf("%w: payload blob of %d bytes", ErrFormat, len(blob))
			}
			lw.write(uint32(len(blob)))
			lw.writeBytes(blob)
		}
	}

	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}

// Load reads a double array in the binary format from r, payloads are
// decoded with codec.
//
// Framing violations (bad magic, unknown version, impossible lengths,
// truncated stream) are reported wrapping [ErrFormat], payloads the
// codec rejects wrapping [ErrDecode].
func Load[V any](r io.Reader, codec Codec[V]) (*DoubleArray[V], error) {
	br := bufio.NewReader(r)

	var head [6]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if [4]byte(head[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, head[:4])
	}
	if v := binary.LittleEndian.Uint16(head[4:]); v != formatVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrFormat, v, formatVersion)
	}

	var m uint64
	if err := binary.Read(br, binary.LittleEndian, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if m < 2 || m > maxCapacity {
		return nil, fmt.Errorf("%w: %d slots", ErrFormat, m)
	}

	d := &DoubleArray[V]{
		base:  make([]int32, m),
		check: make([]uint32, m),
	}
	if err := binary.Read(br, binary.LittleEndian, d.base); err != nil {
		return nil, fmt.Errorf("%w: BASE: %v", ErrFormat, err)
	}
	if err := binary.Read(br, binary.LittleEndian, d.check); err != nil {
		return nil, fmt.Errorf("%w: CHECK: %v", ErrFormat, err)
	}

	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if count > m {
		// more value lists than slots is impossible
		return nil, fmt.Errorf("%w: %d value lists for %d slots", ErrFormat, count, m)
	}

	// every leaf must reference a value list inside the table,
	// the read path relies on it
	for j, b := range d.base {
		if b < 0 && uint64(-(int64(b)+1)) >= count {
			return nil, fmt.Errorf("%w: leaf %d references value list %d of %d", ErrFormat, j, -(int64(b) + 1), count)
		}
	}

	d.values = make([][]V, count)
	for k := range d.values {
		var n uint32
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: value list %d: %v", ErrFormat, k, err)
		}

		// don't trust n for the preallocation, the stream may lie
		list := make([]V, 0, min(n, 1024))
		for range n {
			var size uint32
			if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
				return nil, fmt.Errorf("%w: value list %d: %v", ErrFormat, k, err)
			}
			blob := make([]byte, size)
			if _, err := io.ReadFull(br, blob); err != nil {
				return nil, fmt.Errorf("%w: value list %d: %v", ErrFormat, k, err)
			}

			v, err := codec.Decode(blob)
			if err != nil {
				return nil, fmt.Errorf("%w: value list %d: %v", ErrDecode, k, err)
			}
			list = append(list, v)
		}
		d.values[k] = list
	}

	return d, nil
}
