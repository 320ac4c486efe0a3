// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package dary builds and queries double-array tries (DAT), a compact,
// static, array-encoded map from byte-string keys to one or more
// associated values.
//
// The library splits the work into two types:
//
//   - Trie:        mutable, grows by Set, consumed exactly once
//   - DoubleArray: immutable, exact-match Get in O(len(key)) array
//     probes, no pointer chasing and no allocation on the read path
//
// Compilation places every trie node into two parallel integer arrays
// BASE and CHECK in the classic Aoe style: the child of the node at
// slot i along edge c lives at slot BASE[i]+c with CHECK[BASE[i]+c]
// equal to i. The alphabet is the 256 byte values plus one reserved
// terminator symbol, so that a key can be a prefix of another key.
//
// A built DoubleArray carries no interior mutability, any number of
// goroutines may call Get concurrently without synchronization. It
// serializes to a fixed little-endian binary format via Dump and Load,
// user payloads are framed by a caller-supplied Codec.
package dary
