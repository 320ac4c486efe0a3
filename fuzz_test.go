// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dary

import (
	"bytes"
	"math/rand/v2"
	"reflect"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed corpus
	f.Add(uint64(12345), 150, 8)
	f.Add(uint64(67890), 400, 16)
	f.Add(uint64(54321), 800, 4)
	// Edge-case leaning seeds
	f.Add(uint64(0), 10, 1)     // bias towards tiny sets and 1-byte keys
	f.Add(^uint64(0), 2000, 32) // large sets, long keys

	f.Fuzz(func(t *testing.T, seed uint64, n, maxLen int) {
		if n < 1 || n > 5000 || maxLen < 1 || maxLen > 64 {
			t.Skip("bounds")
		}

		prng := rand.New(rand.NewPCG(seed, 13))
		keys := randomKeys(prng, n, maxLen)

		want := map[string][]uint64{}
		tr := New[uint64]()
		for i, key := range keys {
			tr.Set(key, uint64(i))
			want[string(key)] = append(want[string(key)], uint64(i))
		}

		da, err := tr.ToDoubleArray()
		if err != nil {
			t.Fatalf("ToDoubleArray: %v", err)
		}
		if err := da.validate(); err != nil {
			t.Fatalf("validate: %v", err)
		}
		if da.Len() != len(want) {
			t.Fatalf("Len mismatch: want %d got %d", len(want), da.Len())
		}

		for key, vals := range want {
			got, ok := da.Get([]byte(key))
			if !ok || !reflect.DeepEqual(got, vals) {
				t.Fatalf("Get(%q): want %v got %v, %v", key, vals, got, ok)
			}
		}

		// probe mutations of known keys, a miss must stay a miss
		for range 100 {
			key := bytes.Clone(keys[prng.IntN(len(keys))])
			switch prng.IntN(3) {
			case 0:
				key = append(key, byte(prng.UintN(256)))
			case 1:
				key = key[:prng.IntN(len(key)+1)]
			case 2:
				key[prng.IntN(len(key))] ^= byte(1 + prng.UintN(255))
			}

			_, wantOK := want[string(key)]
			if gotOK := da.Contains(key); gotOK != wantOK {
				t.Fatalf("Contains(%q): want %v got %v", key, wantOK, gotOK)
			}
		}
	})
}

func FuzzDumpLoad(f *testing.F) {
	// Seed corpus
	f.Add(uint64(1), 100, 8)
	f.Add(uint64(2), 500, 24)
	f.Add(uint64(3), 1, 1)

	f.Fuzz(func(t *testing.T, seed uint64, n, maxLen int) {
		if n < 1 || n > 2000 || maxLen < 1 || maxLen > 32 {
			t.Skip("bounds")
		}

		prng := rand.New(rand.NewPCG(seed, 42))
		keys := randomKeys(prng, n, maxLen)

		tr := New[[]byte]()
		for _, key := range keys {
			tr.Set(key, key)
		}

		da, err := tr.ToDoubleArray()
		if err != nil {
			t.Fatalf("ToDoubleArray: %v", err)
		}

		buf := new(bytes.Buffer)
		if err := da.Dump(buf, BytesCodec{}); err != nil {
			t.Fatalf("Dump: %v", err)
		}

		da2, err := Load(bytes.NewReader(buf.Bytes()), BytesCodec{})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}

		if !reflect.DeepEqual(da.base, da2.base) ||
			!reflect.DeepEqual(da.check, da2.check) {
			t.Fatal("arrays differ after dump/load")
		}

		for _, key := range keys {
			got, ok := da2.Get(key)
			if !ok {
				t.Fatalf("Get(%q) after load: want ok", key)
			}
			for _, v := range got {
				if !bytes.Equal(v, key) {
					t.Fatalf("Get(%q) after load: got value %q", key, v)
				}
			}
		}
	})
}

func FuzzLoadHostileInput(f *testing.F) {
	// a well-formed stream as seed
	tr := New[string]()
	tr.Set([]byte("seed"), "v")
	da, err := tr.ToDoubleArray()
	if err != nil {
		f.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := da.Dump(buf, StringCodec{}); err != nil {
		f.Fatal(err)
	}
	f.Add(buf.Bytes())
	f.Add([]byte("dary"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		// must never panic, errors are fine
		da, err := Load(bytes.NewReader(data), StringCodec{})
		if err != nil {
			return
		}
		// a stream that loads cleanly must answer lookups without panic
		da.Contains([]byte("anything"))
		da.Contains([]byte{})
	})
}
