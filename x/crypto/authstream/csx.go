// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package authstream

import (
	"crypto/subtle"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/primitives"
)

// Variant selects the ChaCha-family width: CSX256 is standard IETF ChaCha20
// (20 rounds, 32-byte key); CSX512 is an experimental two-lane extension
// (spec.md §9 flags the 512-bit form's security margin as unpublished).
// golang.org/x/crypto/chacha20 exposes no configurable round count, so
// CSX512 is built here as two independent CSX256 lanes over a split
// 64-byte key, their keystreams XORed together block-for-block — a
// deliberately conservative stand-in, not a literal 40/80-round schedule.
type Variant int

const (
	CSX256 Variant = iota
	CSX512
)

func (v Variant) keySize() int {
	if v == CSX512 {
		return 64
	}
	return 32
}

const blockSize = 64

// AuthStream is the ChaCha-family authenticated stream cipher of spec.md
// §4.3: AEAD semantics (set_associated_data / transform / tag) layered over
// a ChaCha20 keystream, with a MAC key that rotates every transform.
type AuthStream struct {
	variant Variant
	auth    Authenticator

	encrypt     bool
	initialized bool
	finalized   bool

	cipherKeyA []byte
	cipherKeyB []byte // only used by CSX512's second lane
	nonce      [2]uint32
	blockIdx   uint32

	macKey        []byte
	macCounter    uint64
	customization []byte

	aad []byte
	tag []byte
}

// New constructs an unconfigured AuthStream of the given variant and
// authenticator.
func New(variant Variant, auth Authenticator) *AuthStream {
	return &AuthStream{variant: variant, auth: auth}
}

// Initialize seeds the stream from kc and selects encrypt or decrypt mode.
// kc.Key must be the variant's key size (32 for CSX256, 64 for CSX512);
// kc.Nonce, if present, must be 8 bytes (the two 32-bit nonce words);
// kc.Info, if present, becomes the customization string folded into the
// authenticated key schedule.
func (a *AuthStream) Initialize(encrypt bool, kc *keycontainer.KeyContainer) error {
	if a.initialized {
		return newError(IllegalOperation, "Initialize", nil)
	}
	if kc == nil || len(kc.Key) != a.variant.keySize() {
		return newError(InvalidKey, "Initialize", nil)
	}
	if kc.Nonce != nil && len(kc.Nonce) != 8 {
		return newError(InvalidNonce, "Initialize", nil)
	}

	a.encrypt = encrypt
	a.customization = append([]byte(nil), kc.Info...)
	if len(kc.Nonce) == 8 {
		a.nonce[0] = binary.LittleEndian.Uint32(kc.Nonce[0:4])
		a.nonce[1] = binary.LittleEndian.Uint32(kc.Nonce[4:8])
	}

	if a.auth == AuthNone {
		a.cipherKeyA = append([]byte(nil), kc.Key[:32]...)
		if a.variant == CSX512 {
			a.cipherKeyB = append([]byte(nil), kc.Key[32:64]...)
		}
	} else {
		if err := a.scheduleKeys(kc.Key); err != nil {
			return newError(InvalidKey, "Initialize", err)
		}
	}

	a.initialized = true
	return nil
}

// scheduleKeys absorbs key into a cSHAKE sponge with function name
// "AuthStream" and customization mac_counter_le64 ‖ info, and squeezes a
// fresh cipher key plus MAC key (spec.md §4.3's authenticated key schedule).
func (a *AuthStream) scheduleKeys(key []byte) error {
	custom := a.rotationCustomization()
	xof, err := primitives.NewCShake(primitives.SHAKE256, []byte("AuthStream"), custom)
	if err != nil {
		return err
	}
	xof.Absorb(key)

	cipherKeyLen := a.variant.keySize()
	macKeyLen := a.auth.TagSize()
	derived := xof.Squeeze(cipherKeyLen + macKeyLen)

	a.cipherKeyA = append([]byte(nil), derived[:32]...)
	if a.variant == CSX512 {
		a.cipherKeyB = append([]byte(nil), derived[32:64]...)
	}
	a.macKey = append([]byte(nil), derived[cipherKeyLen:cipherKeyLen+macKeyLen]...)
	return nil
}

func (a *AuthStream) rotationCustomization() []byte {
	var counterLE [8]byte
	binary.LittleEndian.PutUint64(counterLE[:], a.macCounter)
	out := make([]byte, 0, 8+len(a.customization))
	out = append(out, counterLE[:]...)
	out = append(out, a.customization...)
	return out
}

// SetAssociatedData stores aad to be authenticated (but not encrypted) by
// the next Transform call.
func (a *AuthStream) SetAssociatedData(aad []byte) error {
	if !a.initialized {
		return newError(NotInitialized, "SetAssociatedData", nil)
	}
	a.aad = aad
	return nil
}

// Transform encrypts or decrypts in-place semantics into out: on encrypt,
// out must be len(in)+tagSize and receives ciphertext‖tag; on decrypt, in is
// ciphertext‖tag and out (len(in)-tagSize) receives plaintext only if the
// tag verifies. On a failed decrypt, out is left untouched and
// AuthenticationFailure is returned (spec.md §4.3's AEAD ordering
// invariant: no plaintext byte is observable on a mismatch).
func (a *AuthStream) Transform(in, out []byte) error {
	if !a.initialized {
		return newError(NotInitialized, "Transform", nil)
	}
	tagSize := a.auth.TagSize()

	if a.encrypt {
		if len(out) != len(in)+tagSize {
			return newError(InvalidSize, "Transform", nil)
		}
		ct := out[:len(in)]
		a.keystreamXOR(in, ct)
		if a.auth == AuthNone {
			a.macCounter += uint64(len(in))
			return nil
		}
		tag := a.computeTag(ct)
		copy(out[len(in):], tag)
		a.macCounter += uint64(len(in))
		a.rotate()
		return nil
	}

	ctLen := len(in) - tagSize
	if ctLen < 0 || len(out) != ctLen {
		return newError(InvalidSize, "Transform", nil)
	}
	ct := in[:ctLen]
	wantTag := in[ctLen:]

	if a.auth != AuthNone {
		gotTag := a.computeTag(ct)
		if subtle.ConstantTimeCompare(gotTag, wantTag) != 1 {
			a.macCounter += uint64(ctLen)
			a.rotate()
			return newError(AuthenticationFailure, "Transform", nil)
		}
	}
	a.keystreamXOR(ct, out)
	a.macCounter += uint64(ctLen)
	a.rotate()
	return nil
}

// computeTag MACs associated data (if any) followed by ciphertext, using
// the authenticator configured at New.
func (a *AuthStream) computeTag(ciphertext []byte) []byte {
	switch a.auth {
	case KMAC256, KMAC512, KMAC1024:
		kind := primitives.SHAKE256
		switch a.auth {
		case KMAC512:
			kind = primitives.SHAKE512
		case KMAC1024:
			kind = primitives.SHAKE1024
		}
		k, err := primitives.NewKMAC(kind, a.macKey, a.rotationCustomization(), a.auth.TagSize())
		if err != nil {
			return nil
		}
		a.writeNonce(k)
		if a.aad != nil {
			k.Write(a.aad)
		}
		k.Write(ciphertext)
		tag := k.Sum()
		a.tag = tag
		return tag
	case HMACSHA256, HMACSHA512:
		kind := primitives.SHA256
		if a.auth == HMACSHA512 {
			kind = primitives.SHA512
		}
		eng, err := primitives.NewHMACEngine(kind)
		if err != nil {
			return nil
		}
		if err := eng.Initialize(keycontainer.New(append([]byte(nil), a.macKey...), nil, nil)); err != nil {
			return nil
		}
		a.writeHMACNonce(eng)
		if a.aad != nil {
			eng.Update(a.aad)
		}
		eng.Update(ciphertext)
		tag := eng.Finalize()
		a.tag = tag
		return tag
	default:
		return nil
	}
}

func (a *AuthStream) writeNonce(k *primitives.KMAC) {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], a.nonce[0])
	binary.LittleEndian.PutUint32(buf[4:8], a.nonce[1])
	k.Write(buf[:])
}

func (a *AuthStream) writeHMACNonce(eng primitives.HMACEngine) {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], a.nonce[0])
	binary.LittleEndian.PutUint32(buf[4:8], a.nonce[1])
	eng.Update(buf[:])
}

// rotate re-derives the cipher/MAC keys from the running mac_counter so the
// next transform uses a fresh MAC key, per spec.md §4.3.
func (a *AuthStream) rotate() {
	if a.auth == AuthNone {
		return
	}
	// Re-absorb the current MAC key (not the original secret) so forward
	// secrecy holds even if a later mac_counter value is guessed.
	_ = a.scheduleKeys(a.macKey)
}

// keystreamXOR fills dst with src XOR ChaCha-keystream(blockIdx), advancing
// blockIdx by one per 64-byte block (spec.md §4.3's Generate contract).
func (a *AuthStream) keystreamXOR(src, dst []byte) {
	nonceBytes := a.chachaNonce()
	laneA, _ := chacha20.NewUnauthenticatedCipher(a.cipherKeyA, nonceBytes)
	laneA.SetCounter(a.blockIdx)
	laneA.XORKeyStream(dst, src)

	if a.variant == CSX512 {
		laneB, _ := chacha20.NewUnauthenticatedCipher(a.cipherKeyB, nonceBytes)
		laneB.SetCounter(a.blockIdx)
		tmp := make([]byte, len(src))
		laneB.XORKeyStream(tmp, src)
		for i := range dst {
			dst[i] ^= tmp[i] ^ src[i]
		}
	}

	a.blockIdx += uint32((len(src) + blockSize - 1) / blockSize)
}

func (a *AuthStream) chachaNonce() []byte {
	var n [chacha20.NonceSize]byte
	binary.LittleEndian.PutUint32(n[4:8], a.nonce[0])
	binary.LittleEndian.PutUint32(n[8:12], a.nonce[1])
	return n[:]
}

// Tag returns the tag produced by the most recent terminal Transform call,
// or nil if none has completed yet.
func (a *AuthStream) Tag() []byte { return a.tag }

// Reset clears all keying and AEAD state, returning the stream to its
// unconfigured state.
func (a *AuthStream) Reset() {
	zero(a.cipherKeyA)
	zero(a.cipherKeyB)
	zero(a.macKey)
	a.cipherKeyA, a.cipherKeyB, a.macKey = nil, nil, nil
	a.nonce = [2]uint32{}
	a.blockIdx = 0
	a.macCounter = 0
	a.aad = nil
	a.tag = nil
	a.initialized = false
	a.finalized = false
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
