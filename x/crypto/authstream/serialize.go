// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package authstream

import "encoding/binary"

// Marshal serializes the stream's persisted state as a fixed concatenation
// (spec.md §6): cipher_state ‖ len16(custom) ‖ custom ‖ len16(mac_key) ‖
// mac_key ‖ len16(mac_tag) ‖ mac_tag ‖ nonce ‖ counter_u64 ‖
// is_authenticated u8 ‖ is_encryption u8 ‖ is_initialized u8, all integers
// little-endian.
//
// cipher_state here is cipherKeyA (and, for CSX512, cipherKeyB appended):
// this implementation derives a fresh ChaCha20 instance per Transform call
// from that key material rather than keeping a live 16-word ChaCha working
// array resident between calls, so the serialized cipher_state is the
// key material that array would be derived from, not the array itself.
func (a *AuthStream) Marshal() []byte {
	cipherState := append([]byte(nil), a.cipherKeyA...)
	cipherState = append(cipherState, a.cipherKeyB...)

	size := len(cipherState) + 2 + len(a.customization) + 2 + len(a.macKey) + 2 + len(a.tag) + 8 + 8 + 1 + 1 + 1
	out := make([]byte, 0, size)

	out = append(out, cipherState...)
	out = appendLen16Field(out, a.customization)
	out = appendLen16Field(out, a.macKey)
	out = appendLen16Field(out, a.tag)

	var nonceBuf [8]byte
	binary.LittleEndian.PutUint32(nonceBuf[0:4], a.nonce[0])
	binary.LittleEndian.PutUint32(nonceBuf[4:8], a.nonce[1])
	out = append(out, nonceBuf[:]...)

	var counterBuf [8]byte
	binary.LittleEndian.PutUint64(counterBuf[:], a.macCounter)
	out = append(out, counterBuf[:]...)

	out = append(out, boolByte(a.auth != AuthNone), boolByte(a.encrypt), boolByte(a.initialized))
	return out
}

func appendLen16Field(out, field []byte) []byte {
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(field)))
	out = append(out, lenBuf[:]...)
	return append(out, field...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Unmarshal restores state previously produced by Marshal. cipherStateLen
// must equal the byte length of cipherKeyA (32) or cipherKeyA+cipherKeyB
// (64, CSX512) for this stream's variant.
func (a *AuthStream) Unmarshal(data []byte) error {
	cipherStateLen := 32
	if a.variant == CSX512 {
		cipherStateLen = 64
	}
	if len(data) < cipherStateLen {
		return newError(InvalidSize, "Unmarshal", nil)
	}
	off := 0
	a.cipherKeyA = append([]byte(nil), data[off:off+32]...)
	off += 32
	if a.variant == CSX512 {
		a.cipherKeyB = append([]byte(nil), data[off:off+32]...)
		off += 32
	}

	custom, n, err := readLen16Field(data, off)
	if err != nil {
		return newError(InvalidSize, "Unmarshal", err)
	}
	a.customization = custom
	off = n

	macKey, n, err := readLen16Field(data, off)
	if err != nil {
		return newError(InvalidSize, "Unmarshal", err)
	}
	a.macKey = macKey
	off = n

	tag, n, err := readLen16Field(data, off)
	if err != nil {
		return newError(InvalidSize, "Unmarshal", err)
	}
	a.tag = tag
	off = n

	if len(data) < off+8+8+3 {
		return newError(InvalidSize, "Unmarshal", nil)
	}
	a.nonce[0] = binary.LittleEndian.Uint32(data[off : off+4])
	a.nonce[1] = binary.LittleEndian.Uint32(data[off+4 : off+8])
	off += 8
	a.macCounter = binary.LittleEndian.Uint64(data[off : off+8])
	off += 8
	a.encrypt = data[off+1] == 1
	a.initialized = data[off+2] == 1
	return nil
}

func readLen16Field(data []byte, off int) ([]byte, int, error) {
	if len(data) < off+2 {
		return nil, 0, newError(InvalidSize, "readLen16Field", nil)
	}
	n := int(binary.LittleEndian.Uint16(data[off : off+2]))
	off += 2
	if len(data) < off+n {
		return nil, 0, newError(InvalidSize, "readLen16Field", nil)
	}
	field := append([]byte(nil), data[off:off+n]...)
	return field, off + n, nil
}
