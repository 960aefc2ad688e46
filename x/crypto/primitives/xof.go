// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package primitives

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// XOFKind selects the extendable-output function backing an XOF.
type XOFKind int

const (
	// SHAKE128 is the 128-bit-security generic SHAKE function.
	SHAKE128 XOFKind = iota
	// SHAKE256 is the 256-bit-security generic SHAKE function.
	SHAKE256
	// SHAKE512 is an experimental, non-standard extension (spec.md marks
	// CSX512/SHAKE512 constructions as experimental pending publication).
	SHAKE512
	// SHAKE1024 is a non-standard sponge rate; kept for completeness but
	// never selected by the Auto entropy provider or any default path.
	SHAKE1024
)

// Rate returns the Keccak sponge rate in bytes for the given XOF kind.
func (k XOFKind) Rate() int {
	switch k {
	case SHAKE128:
		return 168
	case SHAKE256:
		return 136
	case SHAKE512:
		return 72
	case SHAKE1024:
		return 36
	default:
		return 0
	}
}

// XOF is the facade CSG (and the KMAC construction in authstream) build on:
// a customizable, keyed extendable-output function.
type XOF interface {
	// Absorb writes more input into the sponge. Panics if called after
	// Squeeze, matching the underlying cSHAKE contract.
	Absorb(p []byte)

	// Squeeze reads n more bytes of output.
	Squeeze(n int) []byte

	// Clone returns an independent copy of the XOF in its current state.
	Clone() XOF

	// Reset returns the XOF to its initial (post-customization) state.
	Reset()
}

// xofAdapter wraps golang.org/x/crypto/sha3's cSHAKE implementation for the
// two NIST-standard rates (128/256). SHAKE512 and SHAKE1024 are not backed
// by a wider sponge rate; they are served by xofWide (xofwide.go), which
// interleaves several independently-named cSHAKE256 lanes.
type xofAdapter struct {
	kind XOFKind
	h    sha3.ShakeHash
}

// NewCShake constructs a customizable SHAKE XOF. name is the NIST function
// name (e.g. "BCG", "CSG"); custom is the user-supplied customization
// string (spec.md's `info`). Only SHAKE128 and SHAKE256 are backed directly
// by golang.org/x/crypto/sha3; SHAKE512/SHAKE1024 return a hand-extended
// sponge (see xofWide).
func NewCShake(kind XOFKind, name, custom []byte) (XOF, error) {
	switch kind {
	case SHAKE128:
		return &xofAdapter{kind: kind, h: sha3.NewCShake128(name, custom)}, nil
	case SHAKE256:
		return &xofAdapter{kind: kind, h: sha3.NewCShake256(name, custom)}, nil
	case SHAKE512, SHAKE1024:
		return newXOFWide(kind, name, custom)
	default:
		return nil, fmt.Errorf("primitives: unsupported XOF kind %d", kind)
	}
}

func (x *xofAdapter) Absorb(p []byte) {
	x.h.Write(p)
}

func (x *xofAdapter) Squeeze(n int) []byte {
	out := make([]byte, n)
	x.h.Read(out)
	return out
}

func (x *xofAdapter) Clone() XOF {
	return &xofAdapter{kind: x.kind, h: x.h.Clone()}
}

func (x *xofAdapter) Reset() {
	x.h.Reset()
}
