// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package primitives

import "hash"

// HashEngine is the facade DCG builds its un-keyed counter-mode cycle on.
type HashEngine interface {
	Update(p []byte)
	Finalize() []byte
	BlockSize() int
	DigestSize() int
	Zeroize()
}

type hashEngine struct {
	newHash    func() hash.Hash
	digestSize int
	blockSize  int
	h          hash.Hash
}

// NewHashEngine constructs a ready-to-use HashEngine over the given digest.
// Unlike HMACEngine, a HashEngine needs no key and is ready immediately.
func NewHashEngine(kind DigestKind) (HashEngine, error) {
	newHash, digestSize, blockSize, err := newHashFunc(kind)
	if err != nil {
		return nil, err
	}
	return &hashEngine{newHash: newHash, digestSize: digestSize, blockSize: blockSize, h: newHash()}, nil
}

func (e *hashEngine) Update(p []byte) {
	e.h.Write(p)
}

func (e *hashEngine) Finalize() []byte {
	sum := e.h.Sum(nil)
	e.h.Reset()
	return sum
}

func (e *hashEngine) BlockSize() int {
	return e.blockSize
}

func (e *hashEngine) DigestSize() int {
	return e.digestSize
}

func (e *hashEngine) Zeroize() {
	e.h = e.newHash()
}
