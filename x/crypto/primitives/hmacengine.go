// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package primitives

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
)

// HMACEngine is the facade HCG builds its Derive/Generate cycle on.
type HMACEngine interface {
	// Initialize (re-)keys the HMAC with kc.Key.
	Initialize(kc *keycontainer.KeyContainer) error

	// Update absorbs more message bytes.
	Update(p []byte)

	// Finalize returns the MAC tag and resets the running hash state (but
	// not the key) so the engine is ready for the next message under the
	// same key.
	Finalize() []byte

	// TagSize returns the MAC output size in bytes.
	TagSize() int

	// BlockSize returns the underlying hash function's block size in bytes.
	BlockSize() int

	// Zeroize clears the HMAC key.
	Zeroize()
}

// DigestKind selects the hash function backing an HMACEngine or HashEngine.
type DigestKind int

const (
	SHA256 DigestKind = iota
	SHA512
)

func newHashFunc(kind DigestKind) (func() hash.Hash, int, int, error) {
	switch kind {
	case SHA256:
		return sha256.New, sha256.Size, sha256.BlockSize, nil
	case SHA512:
		return sha512.New, sha512.Size, sha512.BlockSize, nil
	default:
		return nil, 0, 0, fmt.Errorf("primitives: unsupported digest kind %d", kind)
	}
}

type hmacEngine struct {
	kind      DigestKind
	newHash   func() hash.Hash
	tagSize   int
	blockSize int
	mac       hash.Hash
}

// NewHMACEngine constructs an un-initialized HMACEngine over the given
// digest.
func NewHMACEngine(kind DigestKind) (HMACEngine, error) {
	newHash, tagSize, blockSize, err := newHashFunc(kind)
	if err != nil {
		return nil, err
	}
	return &hmacEngine{kind: kind, newHash: newHash, tagSize: tagSize, blockSize: blockSize}, nil
}

func (e *hmacEngine) Initialize(kc *keycontainer.KeyContainer) error {
	if len(kc.Key) == 0 {
		return fmt.Errorf("%w: empty HMAC key", ErrInvalidKey)
	}
	key := make([]byte, len(kc.Key))
	copy(key, kc.Key)
	e.mac = hmac.New(e.newHash, key)
	return nil
}

func (e *hmacEngine) Update(p []byte) {
	e.mac.Write(p)
}

func (e *hmacEngine) Finalize() []byte {
	sum := e.mac.Sum(nil)
	e.mac.Reset()
	return sum
}

func (e *hmacEngine) TagSize() int {
	return e.tagSize
}

func (e *hmacEngine) BlockSize() int {
	return e.blockSize
}

func (e *hmacEngine) Zeroize() {
	e.mac = nil
}
