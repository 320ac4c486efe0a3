// Command darybench builds a double array from a pseudorandom key
// corpus and reports build time, array density and query throughput.
// It is a development harness, not part of the library.
package main

import (
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"github.com/ng3rdstmadgke/dary"
)

func main() {
	numKeys := flag.Int("n", 1_000_000, "number of distinct keys")
	keyLen := flag.Int("l", 8, "max key length in bytes")
	numGets := flag.Int("q", 5_000_000, "number of queries")
	flag.Parse()

	log.SetFlags(log.Lmicroseconds)
	prng := rand.New(rand.NewPCG(42, 42))

	keys := make([][]byte, 0, *numKeys)
	seen := make(map[string]bool, *numKeys)
	for len(keys) < *numKeys {
		key := make([]byte, prng.IntN(*keyLen)+1)
		for i := range key {
			key[i] = byte(prng.UintN(256))
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		keys = append(keys, key)
	}

	trie := dary.New[int]()
	ts := time.Now()
	for i, key := range keys {
		trie.Set(key, i)
	}
	log.Printf("insert %d keys: %v", len(keys), time.Since(ts))

	ts = time.Now()
	da, err := trie.ToDoubleArray()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("compile: %v, slots: %d, keys: %d", time.Since(ts), da.Capacity(), da.Len())

	ts = time.Now()
	var hits int
	for i := range *numGets {
		if da.Contains(keys[i%len(keys)]) {
			hits++
		}
	}
	dur := time.Since(ts)
	log.Printf("query: %d gets in %v, %.0f ns/op, hits: %d",
		*numGets, dur, float64(dur.Nanoseconds())/float64(*numGets), hits)
}
