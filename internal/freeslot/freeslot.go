// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package freeslot tracks the unused slots of a double-array under
// construction.
//
// The index is a plain occupancy bitset with word-level scanning, the
// compiler asks it for the next free slot at or after a lower bound
// while searching a base offset for a node's children. A clear bit is
// a free slot, scanning 64 slots per word keeps the search amortized
// near constant per step.
package freeslot

import (
	"github.com/ng3rdstmadgke/dary/internal/bitset"
)

// Index is the set of free slots in [0, Cap).
//
// The zero value is not usable, create an Index with New.
type Index struct {
	occupied bitset.BitSet
	capacity uint
}

// New returns an Index with capacity slots, all free.
func New(capacity uint) *Index {
	return &Index{
		occupied: bitset.New(capacity),
		capacity: capacity,
	}
}

// Cap returns the current slot capacity.
func (x *Index) Cap() uint {
	return x.capacity
}

// Grow raises the capacity to newCap, all added slots are free.
// Shrinking is not possible, a smaller newCap is a no-op.
func (x *Index) Grow(newCap uint) {
	if newCap <= x.capacity {
		return
	}
	x.capacity = newCap
	// extend the backing words, Set+Clear of the last slot
	// round-trips through the bitset's own growth path
	x.occupied.Set(newCap - 1)
	x.occupied.Clear(newCap - 1)
}

// Occupy marks slot k as used.
func (x *Index) Occupy(k uint) {
	x.occupied.Set(k)
}

// Release marks slot k as free again.
func (x *Index) Release(k uint) {
	x.occupied.Clear(k)
}

// Free reports whether slot k is unused. Slots at or past the
// capacity are not free, they don't exist yet.
func (x *Index) Free(k uint) bool {
	return k < x.capacity && !x.occupied.Test(k)
}

// FirstFree returns the smallest free slot >= min,
// ok is false if no slot below the capacity is free.
func (x *Index) FirstFree(min uint) (slot uint, ok bool) {
	if min >= x.capacity {
		return 0, false
	}
	slot = x.occupied.NextClear(min)
	if slot >= x.capacity {
		return 0, false
	}
	return slot, true
}

// NextFree returns the smallest free slot > after,
// ok is false if no slot below the capacity is free.
func (x *Index) NextFree(after uint) (slot uint, ok bool) {
	return x.FirstFree(after + 1)
}
