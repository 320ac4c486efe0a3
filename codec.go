// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package dary

import (
	"encoding/json"
	"slices"
)

// Codec converts payloads to and from byte blobs for persistence.
//
// The double array never inspects payload contents, it stores them as
// length-prefixed blobs grouped per leaf. The only contract is that
// Decode(Encode(v)) equals v. Payload schema is the caller's concern.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// BytesCodec is the identity [Codec] for raw byte payloads.
// Both directions copy, the blob never aliases caller memory.
type BytesCodec struct{}

func (BytesCodec) Encode(v []byte) ([]byte, error) {
	return slices.Clone(v), nil
}

func (BytesCodec) Decode(data []byte) ([]byte, error) {
	return slices.Clone(data), nil
}

// StringCodec is the [Codec] for string payloads.
type StringCodec struct{}

func (StringCodec) Encode(v string) ([]byte, error) {
	return []byte(v), nil
}

func (StringCodec) Decode(data []byte) (string, error) {
	return string(data), nil
}

// JSONCodec marshals payloads of any JSON-serializable type V.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec[V]) Decode(data []byte) (v V, err error) {
	err = json.Unmarshal(data, &v)
	return v, err
}
