// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"encoding/binary"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/entropy"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/primitives"
)

// bcgLegalSizes lists the AES key sizes BCG accepts, with a 16-byte nonce
// (the AES block size, used as the initial CTR counter V) for every size.
// InfoSize is left at its zero value: spec.md §4.2.1 accepts arbitrary-
// length info, it just changes which key-schedule path Initialize takes.
var bcgLegalSizes = keycontainer.LegalSizes{
	{KeySize: 16, NonceSize: 16},
	{KeySize: 24, NonceSize: 16},
	{KeySize: 32, NonceSize: 16, Recommended: true},
}

// bcgName is the cSHAKE customization tag spec.md §4.2.1 prefixes onto the
// key-schedule customization string ("BCG" ‖ key_bits_le16 ‖ class_name).
var bcgName = []byte("BCG")

// bcgClassName stands in for the class_name spec.md §4.2.1's customization
// string names; no example in the pack exposes a separate class-tag value
// for this generator, so BCG's own name is reused here, matching how CSG's
// "CSG" function-name tag and HCG/DCG's distribution code double as their
// own domain separators elsewhere in this package.
const bcgClassName = "BCG"

// BCG is the block-cipher counter-mode DRBG: AES in CTR mode, generalizing
// the teacher's ctrdrbg.drbg to all three AES key sizes and a synchronous,
// threshold-driven reseed cycle instead of ctrdrbg's asynchronous background
// rekey (spec.md §4.2's BCG subsection requires the reseed to be visible
// within the Generate call that crosses the threshold).
type BCG struct {
	*state

	cipher primitives.BlockCipher
	key    []byte // the AES key currently loaded into cipher (post key-schedule)
	v      [16]byte

	provider entropy.Provider
	keySize  int
}

// NewBCG constructs an unconfigured BCG. provider may be nil, in which case
// the generator never reseeds automatically and SetReseedThreshold becomes
// irrelevant (invariant 2 is vacuously satisfied).
func NewBCG(provider entropy.Provider) *BCG {
	return &BCG{
		state:    newState(256, maxRequestBlockCipher, 1<<20, provider),
		provider: provider,
	}
}

func (b *BCG) Initialize(kc *keycontainer.KeyContainer) error {
	if err := b.checkInitialize("Initialize"); err != nil {
		return err
	}
	if kc == nil {
		return newError(InvalidKey, "Initialize", nil)
	}
	if !bcgLegalSizes.Validate(len(kc.Key), len(kc.Nonce), len(kc.Info)) {
		return newError(InvalidKey, "Initialize", nil)
	}

	cipherKey := kc.Key
	recommended, _ := bcgLegalSizes.Recommended()
	if len(kc.Info) > 0 || len(kc.Key) == recommended.KeySize {
		derived, err := bcgKeySchedule(kc.Key, kc.Info)
		if err != nil {
			return newError(InvalidInfo, "Initialize", err)
		}
		cipherKey = derived
	}

	cipher := primitives.NewAESCipher()
	if err := cipher.Initialize(keycontainer.New(append([]byte(nil), cipherKey...), nil, nil)); err != nil {
		return newError(InvalidKey, "Initialize", err)
	}
	b.cipher = cipher
	b.key = append([]byte(nil), cipherKey...)
	b.keySize = len(kc.Key)
	if len(kc.Nonce) == 16 {
		copy(b.v[:], kc.Nonce)
	}
	b.life = initialized
	return nil
}

// bcgKeySchedule implements spec.md §4.2.1's cSHAKE-256 key schedule: absorb
// key ‖ info and squeeze a fresh AES key, customized with a fixed
// "BCG" ‖ key_bits_le16 ‖ class_name string. crypto/aes (the BlockCipher
// this module wires BCG through) performs its own standard round-key
// expansion over the resulting bytes; this derives the AES *key* cSHAKE
// produces, not raw expanded round keys, since the BlockCipher façade has
// no seam for injecting an externally-expanded schedule.
func bcgKeySchedule(key, info []byte) ([]byte, error) {
	xof, err := primitives.NewCShake(primitives.SHAKE256, nil, bcgCustomization(len(key)))
	if err != nil {
		return nil, err
	}
	xof.Absorb(key)
	if len(info) > 0 {
		xof.Absorb(info)
	}
	return xof.Squeeze(len(key)), nil
}

// bcgCustomization builds "BCG" ‖ key_bits_le16 ‖ class_name, the fixed
// customization string spec.md §4.2.1 requires for the key-schedule cSHAKE.
func bcgCustomization(keyLen int) []byte {
	out := make([]byte, 0, len(bcgName)+2+len(bcgClassName))
	out = append(out, bcgName...)
	var kb [2]byte
	binary.LittleEndian.PutUint16(kb[:], uint16(keyLen*8))
	out = append(out, kb[:]...)
	out = append(out, bcgClassName...)
	return out
}

func (b *BCG) Generate(out []byte) error {
	if err := b.checkGenerate("Generate", len(out)); err != nil {
		return err
	}
	return b.reseedLoop(out, b.fillBlocks, b.reseed)
}

// fillBlocks is ctrdrbg's fillBlocks, generalized to operate on the BCG's
// own counter directly (a BCG instance is single-writer, so the teacher's
// copy-out/copy-in pattern around a separate mutex is not used).
func (b *BCG) fillBlocks(dst []byte) error {
	n := len(dst)
	offset := 0
	for ; offset+16 <= n; offset += 16 {
		incV(&b.v)
		b.cipher.EncryptBlock(dst[offset:offset+16], b.v[:])
	}
	if tail := n - offset; tail > 0 {
		var tmp [16]byte
		incV(&b.v)
		b.cipher.EncryptBlock(tmp[:], b.v[:])
		copy(dst[offset:], tmp[:tail])
	}
	return nil
}

// reseed implements spec.md §4.2.1's reseed step: derive a new key via
// cSHAKE-256 over current_key ‖ provider.get(key_len), customized with
// "BCG-reseed", and replace the round keys. Carrying the current key
// forward (rather than discarding it for fresh provider bytes alone)
// preserves the state-carry the spec's reseed step requires.
func (b *BCG) reseed() error {
	if b.provider == nil {
		return nil
	}
	fresh := make([]byte, b.keySize)
	defer zeroBytes(fresh)
	if err := b.provider.Fill(fresh); err != nil {
		return err
	}

	xof, err := primitives.NewCShake(primitives.SHAKE256, nil, []byte("BCG-reseed"))
	if err != nil {
		return err
	}
	xof.Absorb(b.key)
	xof.Absorb(fresh)
	newKey := xof.Squeeze(b.keySize)

	cipher := primitives.NewAESCipher()
	if err := cipher.Initialize(keycontainer.New(append([]byte(nil), newKey...), nil, nil)); err != nil {
		return err
	}
	b.cipher.Zeroize()
	b.cipher = cipher
	zeroBytes(b.key)
	b.key = newKey
	return nil
}

func (b *BCG) Update(seed []byte) error {
	if err := b.checkUpdate("Update"); err != nil {
		return err
	}
	if len(seed) == 0 {
		return newError(InvalidSize, "Update", nil)
	}
	for i := range b.v {
		b.v[i] ^= seed[i%len(seed)]
	}
	return nil
}

func (b *BCG) ReseedThreshold() uint64              { return b.state.reseedThreshold }
func (b *BCG) SetReseedThreshold(n uint64) error     { return b.state.setReseedThreshold("SetReseedThreshold", n) }
func (b *BCG) IsInitialized() bool                   { return b.life != unconfigured && b.life != finalized }
func (b *BCG) SecurityStrength() int                 { return b.keySize * 8 }
func (b *BCG) LegalKeySizes() keycontainer.LegalSizes { return bcgLegalSizes }
func (b *BCG) MaxOutputSize() uint64                  { return b.maxOutput }
func (b *BCG) MaxRequestSize() int                    { return b.maxRequest }
func (b *BCG) MaxReseedCount() int                    { return b.maxReseed }
func (b *BCG) Name() string                           { return "BCG" }
func (b *BCG) Enumeral() Variant                      { return BCGVariant }

func (b *BCG) Destroy() {
	zeroBytes(b.v[:])
	zeroBytes(b.key)
	if b.cipher != nil {
		b.cipher.Zeroize()
	}
	b.cipher = nil
	b.destroy()
}

// incV increments a 128-bit big-endian counter in place, matching
// ctrdrbg.incV.
func incV(v *[16]byte) {
	for i := 15; i >= 0; i-- {
		v[i]++
		if v[i] != 0 {
			break
		}
	}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
