// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dary

import (
	"fmt"
	"io"
	"strings"
)

// dumpString is just a wrapper for dump.
func (d *DoubleArray[V]) dumpString() string {
	w := new(strings.Builder)
	if err := d.dump(w); err != nil {
		panic(err)
	}
	return w.String()
}

// dump the double-array state to w.
// Useful during development and debugging.
//
//	 Output:
//
//		slots: 18 occupied: 9 (50.0%) keys: 3
//		[ROOT]    1 base:    3
//		[NODE]    4 base:   12 check:    1 sym: 0x00
//		[LEAF]   12 vals: #1   check:    4
//		...
func (d *DoubleArray[V]) dump(w io.Writer) error {
	must := func(_ int, err error) {
		if err != nil {
			panic(err)
		}
	}

	occupied := 0
	for j := 1; j < len(d.check); j++ {
		if j == 1 || d.check[j] != 0 {
			occupied++
		}
	}

	if _, err := fmt.Fprintf(w, "slots: %d occupied: %d (%.1f%%) keys: %d\n",
		len(d.base), occupied, 100*float64(occupied)/float64(len(d.base)), len(d.values)); err != nil {
		return err
	}

	for j := 1; j < len(d.base); j++ {
		if j != 1 && d.check[j] == 0 {
			continue
		}

		switch base := d.base[j]; {
		case j == 1:
			must(fmt.Fprintf(w, "[ROOT] %4d base: %4d\n", j, base))
		case base < 0:
			must(fmt.Fprintf(w, "[LEAF] %4d vals: #%-3d check: %4d\n",
				j, len(d.values[-(base+1)]), d.check[j]))
		default:
			// the edge symbol is the distance to the parent's base
			sym := uint(j) - uint(d.base[d.check[j]])
			must(fmt.Fprintf(w, "[NODE] %4d base: %4d check: %4d sym: %s\n",
				j, base, d.check[j], symFmt(sym)))
		}
	}
	return nil
}

// symFmt, the terminator gets a glyph, bytes print as hex.
func symFmt(sym uint) string {
	if sym == terminator {
		return "$"
	}
	return fmt.Sprintf("0x%02x", sym-1)
}
