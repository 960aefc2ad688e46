// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package primitives

import "encoding/binary"

// KMAC is a Keccak-based MAC built from cSHAKE per NIST SP 800-185. It is
// the authenticator AuthStream rotates per transform (spec.md §4.3): the
// key schedule re-derives a fresh KMAC key from the running mac_counter on
// every finalize.
type KMAC struct {
	kind   XOFKind
	custom []byte
	tagLen int
	xof    XOF
}

// NewKMAC builds a KMAC instance keyed with key, customized with custom,
// producing tagLen-byte tags. kind selects KMAC128/256/512/1024's
// underlying rate (512/1024 are experimental, see xofwide.go).
func NewKMAC(kind XOFKind, key, custom []byte, tagLen int) (*KMAC, error) {
	xof, err := NewCShake(kind, []byte("KMAC"), custom)
	if err != nil {
		return nil, err
	}
	rate := kind.Rate()
	xof.Absorb(bytepad(encodeString(key), rate))
	return &KMAC{kind: kind, custom: custom, tagLen: tagLen, xof: xof}, nil
}

// Write absorbs more message bytes into the running KMAC state.
func (k *KMAC) Write(p []byte) {
	k.xof.Absorb(p)
}

// Sum finalizes the KMAC and returns the tag. The right_encode(outputLen)
// suffix required by SP 800-185 is appended before squeezing, matching the
// standard's "KMAC" (not "KMACXOF") fixed-length variant.
func (k *KMAC) Sum() []byte {
	dup := k.xof.Clone()
	dup.Absorb(rightEncode(uint64(k.tagLen) * 8))
	return dup.Squeeze(k.tagLen)
}

// leftEncode implements the NIST SP 800-185 left_encode primitive: the
// minimal big-endian encoding of value, prefixed by its own length in bytes.
func leftEncode(value uint64) []byte {
	var b [9]byte
	binary.BigEndian.PutUint64(b[1:], value)
	i := 1
	for i < 8 && b[i] == 0 {
		i++
	}
	b[i-1] = byte(9 - i)
	return b[i-1:]
}

// rightEncode implements the NIST SP 800-185 right_encode primitive: the
// minimal big-endian encoding of value, suffixed by its own length in bytes.
func rightEncode(value uint64) []byte {
	var b [9]byte
	binary.BigEndian.PutUint64(b[:8], value)
	i := 0
	for i < 7 && b[i] == 0 {
		i++
	}
	n := 8 - i
	out := make([]byte, n+1)
	copy(out, b[i:8])
	out[n] = byte(n)
	return out
}

// encodeString implements encode_string(S) = left_encode(len(S) in bits) || S.
func encodeString(s []byte) []byte {
	out := leftEncode(uint64(len(s)) * 8)
	return append(out, s...)
}

// bytepad pads its input to a multiple of w bytes, prefixed with
// left_encode(w), per SP 800-185.
func bytepad(input []byte, w int) []byte {
	buf := make([]byte, 0, 9+len(input)+w)
	buf = append(buf, leftEncode(uint64(w))...)
	buf = append(buf, input...)
	if pad := w - (len(buf) % w); pad != w {
		buf = append(buf, make([]byte, pad)...)
	}
	return buf
}
