// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package primitives is the thin, uniform facade C2 generators build on: a
// block cipher, an HMAC engine, a hash engine, and an XOF, each exposing only
// the handful of operations a DRBG or authenticated stream needs. Adapters
// are pure transformers — they hold no reseed policy, no counters, nothing
// that the generators above them own.
package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
)

// BlockCipher is the facade over a 128-bit-block cipher used in counter
// mode by the BCG generator. Implementations must be re-initializable: a
// second Initialize call replaces the round keys in place.
type BlockCipher interface {
	// LegalKeySizes lists the key sizes this cipher accepts.
	LegalKeySizes() keycontainer.LegalSizes

	// Initialize expands round keys from kc.Key. Returns an error wrapping
	// ErrInvalidKey if the key length isn't legal.
	Initialize(kc *keycontainer.KeyContainer) error

	// BlockSize returns the cipher's block size in bytes.
	BlockSize() int

	// EncryptBlock encrypts exactly one block from in into out. in and out
	// must each be at least BlockSize() bytes and may overlap exactly.
	EncryptBlock(dst, src []byte)

	// Zeroize clears the round-key schedule.
	Zeroize()
}

// ErrInvalidKey is returned (wrapped) when a key size is not in
// LegalKeySizes.
var ErrInvalidKey = fmt.Errorf("primitives: invalid key size")

// aesCipher adapts crypto/aes + crypto/cipher to BlockCipher. This is the
// concrete block cipher BCG uses; the spec's "wide-Rijndael" variant is left
// as an open question (see DESIGN.md) and a second BlockCipher
// implementation can be added later without touching BCG.
type aesCipher struct {
	block cipher.Block
}

// NewAESCipher constructs an un-initialized AES BlockCipher adapter.
func NewAESCipher() BlockCipher {
	return &aesCipher{}
}

func (c *aesCipher) LegalKeySizes() keycontainer.LegalSizes {
	return keycontainer.LegalSizes{
		{KeySize: 16},
		{KeySize: 24},
		{KeySize: 32, Recommended: true},
	}
}

func (c *aesCipher) Initialize(kc *keycontainer.KeyContainer) error {
	if !c.LegalKeySizes().Validate(len(kc.Key), 0, 0) {
		return fmt.Errorf("%w: %d bytes", ErrInvalidKey, len(kc.Key))
	}
	block, err := aes.NewCipher(kc.Key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	c.block = block
	return nil
}

func (c *aesCipher) BlockSize() int {
	return aes.BlockSize
}

func (c *aesCipher) EncryptBlock(dst, src []byte) {
	c.block.Encrypt(dst, src)
}

func (c *aesCipher) Zeroize() {
	c.block = nil
}
