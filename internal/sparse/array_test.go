// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparse

import (
	"math/rand/v2"
	"testing"
)

func TestNewArray(t *testing.T) {
	t.Parallel()
	a := new(Array[int])

	if c := a.Len(); c != 0 {
		t.Errorf("Len, expected 0, got %d", c)
	}
}

func TestSparseArrayGet(t *testing.T) {
	t.Parallel()
	a := new(Array[int])

	for i := range 10_000 {
		a.InsertAt(uint(i), i)
	}

	for range 100 {
		i := rand.IntN(10_000)
		v, ok := a.Get(uint(i))
		if !ok {
			t.Errorf("Get, expected true, got %v", ok)
		}
		if v != i {
			t.Errorf("Get, expected %d, got %d", i, v)
		}

		v = a.MustGet(uint(i))
		if v != i {
			t.Errorf("MustGet, expected %d, got %d", i, v)
		}
	}

	_, ok := a.Get(20_000)
	if ok {
		t.Errorf("Get, expected false, got %v", ok)
	}
}

func TestSparseArrayMustGetPanic(t *testing.T) {
	t.Parallel()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("MustGet, expected panic")
		}
	}()

	a := new(Array[int])

	for i := 5; i <= 10; i++ {
		a.InsertAt(uint(i), i)
	}

	// must panic, runtime error: index out of range [-1]
	a.MustGet(0)
}

func TestSparseArrayInsertOverwrite(t *testing.T) {
	t.Parallel()
	a := new(Array[int])

	if exists := a.InsertAt(77, 1); exists {
		t.Error("InsertAt new index, expected exists=false")
	}
	if exists := a.InsertAt(77, 2); !exists {
		t.Error("InsertAt same index, expected exists=true")
	}
	if v := a.MustGet(77); v != 2 {
		t.Errorf("MustGet, expected 2, got %d", v)
	}
	if c := a.Len(); c != 1 {
		t.Errorf("Len, expected 1, got %d", c)
	}
}

func TestSparseArrayUpdate(t *testing.T) {
	t.Parallel()
	a := new(Array[int])

	for i := range 10_000 {
		a.InsertAt(uint(i), i)
	}

	// mult all values * 2
	for i := 15_000; i >= 0; i-- {
		a.UpdateAt(uint(i), func(oldVal int, existsOld bool) int {
			newVal := i * 3
			if existsOld {
				newVal = oldVal * 2
			}
			return newVal
		})
	}

	for i := range 10_000 {
		v, _ := a.Get(uint(i))
		if v != 2*i {
			t.Errorf("UpdateAt, expected %d, got %d", 2*i, v)
		}
	}

	for i := 10_000; i <= 15_000; i++ {
		v, _ := a.Get(uint(i))
		if v != 3*i {
			t.Errorf("UpdateAt, expected %d, got %d", 3*i, v)
		}
	}
}

func TestSparseArrayIndexes(t *testing.T) {
	t.Parallel()
	a := new(Array[string])

	// out of order inserts, iteration must come back sorted
	for _, i := range []uint{256, 0, 99, 7, 128} {
		a.InsertAt(i, "x")
	}

	got := a.Indexes(nil)
	want := []uint{0, 7, 99, 128, 256}
	if len(got) != len(want) {
		t.Fatalf("Indexes, expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Indexes, expected %v, got %v", want, got)
		}
	}

	// Indexes aligns with Items
	for k, idx := range got {
		if a.MustGet(idx) != a.Items[k] {
			t.Fatalf("Indexes[%d] and Items[%d] disagree", k, k)
		}
	}
}
