// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dary

import (
	"errors"
	"fmt"
	"math"

	"github.com/ng3rdstmadgke/dary/internal/freeslot"
)

const (
	// initialCapacity of BASE and CHECK, grows by doubling.
	initialCapacity = 1024

	// maxCapacity, slot indices must fit into the int32 BASE and
	// uint32 CHECK entries of the binary format.
	maxCapacity = math.MaxInt32
)

// These errors can be returned by [Trie.ToDoubleArray]. Errors are
// wrapped with fmt.Errorf, use [errors.Is] to check for the
// underlying error.
var (
	// ErrConsumed, the trie was already compiled.
	ErrConsumed = errors.New("trie already consumed")

	// ErrCapacity, the double array would need more than 2^31-1 slots.
	ErrCapacity = errors.New("double array capacity exceeded")

	// ErrCorruptTrie, compilation detected an impossible trie shape.
	// This is a library bug, not a user error.
	ErrCorruptTrie = errors.New("corrupt trie")
)

// builder holds the growing double-array state during compilation.
type builder[V any] struct {
	base    []int32
	check   []uint32
	slots   *freeslot.Index
	values  [][]V
	maxUsed uint // highest occupied slot
}

// ToDoubleArray consumes the trie and compiles it into an immutable
// [DoubleArray]. The trie is unusable afterwards, a second call
// returns [ErrConsumed].
//
// Compilation walks the trie breadth-first. For every node all child
// symbols are placed at once: the smallest base offset is searched
// such that slot base+c is free for every child symbol c, then the
// children are written to BASE/CHECK and enqueued. Terminator targets
// become leaves, their BASE entry encodes the index into the value
// side-table as -(index+1).
//
// Builds from identical insertion sequences produce bit-identical
// arrays.
func (t *Trie[V]) ToDoubleArray() (*DoubleArray[V], error) {
	if t.consumed {
		return nil, ErrConsumed
	}
	t.consumed = true

	b := &builder[V]{
		base:    make([]int32, initialCapacity),
		check:   make([]uint32, initialCapacity),
		slots:   freeslot.New(initialCapacity),
		maxUsed: 1,
	}

	// slot 0 is reserved, slot 1 is the root
	b.slots.Occupy(0)
	b.slots.Occupy(1)

	type item struct {
		n   *node[V]
		idx uint32
	}

	queue := []item{{&t.root, 1}}
	syms := make([]uint, 0, symbolCount)

	for head := 0; head < len(queue); head++ {
		n, i := queue[head].n, queue[head].idx
		queue[head].n = nil // let placed nodes go out of scope

		syms = n.children.Indexes(syms[:0])
		if len(syms) == 0 {
			// only the root can be childless, leaves are never enqueued
			continue
		}

		base, err := b.findBase(syms)
		if err != nil {
			return nil, err
		}
		b.base[i] = int32(base)

		for k, c := range syms {
			j := base + c
			b.check[j] = i
			b.slots.Occupy(j)
			if j > b.maxUsed {
				b.maxUsed = j
			}

			child := n.children.Items[k]
			if child.children.Len() != 0 {
				if c == terminator || len(child.values) != 0 {
					return nil, fmt.Errorf("%w: values on interior node at slot %d", ErrCorruptTrie, j)
				}
				queue = append(queue, item{child, uint32(j)})
				continue
			}

			// childless, must be the target of a terminator edge
			if c != terminator || len(child.values) == 0 {
				return nil, fmt.Errorf("%w: childless non-terminator node at slot %d", ErrCorruptTrie, j)
			}

			// leaf, BASE encodes the value table index, negative by convention
			b.base[j] = -int32(len(b.values)) - 1
			b.values = append(b.values, child.values)
		}
	}

	size := b.maxUsed + 1
	return &DoubleArray[V]{
		base:   b.base[:size:size],
		check:  b.check[:size:size],
		values: b.values,
	}, nil
}

// findBase searches the smallest base >= 1 such that base+c is free
// for every child symbol in syms, syms is sorted ascending.
//
// Candidates are derived from the free-slot index: take the first free
// slot f at or after cFirst+1, the candidate is base = f-cFirst, test
// the remaining symbols against it, on conflict advance f to the next
// free slot. The arrays grow by doubling whenever a candidate needs
// slots past the current capacity, newly added slots are free.
func (b *builder[V]) findBase(syms []uint) (uint, error) {
	cFirst := syms[0]
	cLast := syms[len(syms)-1]

	f, ok := b.slots.FirstFree(cFirst + 1)
	for {
		if !ok {
			// everything below the capacity is occupied
			oldCap := b.slots.Cap()
			if err := b.grow(oldCap + 1); err != nil {
				return 0, err
			}
			f, ok = b.slots.FirstFree(max(cFirst+1, oldCap))
			continue
		}

		base := f - cFirst // f >= cFirst+1, so base >= 1

		// make room for the largest child of this candidate up front
		if need := base + cLast + 1; need > b.slots.Cap() {
			if err := b.grow(need); err != nil {
				return 0, err
			}
		}

		fits := true
		for _, c := range syms[1:] {
			if !b.slots.Free(base + c) {
				fits = false
				break
			}
		}
		if fits {
			return base, nil
		}

		f, ok = b.slots.NextFree(f)
	}
}

// grow extends BASE, CHECK and the free-slot index to hold at least
// need slots, doubling the capacity for amortized constant cost.
func (b *builder[V]) grow(need uint) error {
	if need > maxCapacity {
		return fmt.Errorf("%w: %d slots needed", ErrCapacity, need)
	}

	newCap := max(need, 2*b.slots.Cap())
	if newCap > maxCapacity {
		newCap = maxCapacity
	}

	base := make([]int32, newCap)
	copy(base, b.base)
	b.base = base

	check := make([]uint32, newCap)
	copy(check, b.check)
	b.check = check

	b.slots.Grow(newCap)
	return nil
}
