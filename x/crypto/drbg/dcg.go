// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/entropy"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/primitives"
)

func dcgLegalSizes(digestSize int) keycontainer.LegalSizes {
	return keycontainer.LegalSizes{
		{KeySize: digestSize, NonceSize: 8},
		{KeySize: digestSize * 2, NonceSize: 8, Recommended: true},
	}
}

// DCG is the digest counter-mode DRBG: a plain (unkeyed) hash function run
// in the same Sc/R/Dc counter cycle as HCG, with the seed key folded into
// every digest call in place of an HMAC key (original_source/CEX/HCG.h
// documents the HMAC variant directly; DCG generalizes it the way HCG.h's
// own notes describe the un-keyed digest construction it was derived from).
type DCG struct {
	*state

	hash primitives.HashEngine
	key  []byte

	counter [8]byte
	r       []byte
	dc      []byte

	provider entropy.Provider
}

// NewDCG constructs an unconfigured DCG over the given digest.
func NewDCG(kind primitives.DigestKind, provider entropy.Provider) (*DCG, error) {
	h, err := primitives.NewHashEngine(kind)
	if err != nil {
		return nil, err
	}
	return &DCG{
		state:    newState(h.DigestSize()*8, maxRequestDigest, uint64(h.DigestSize())*1000, provider),
		hash:     h,
		provider: provider,
	}, nil
}

func (d *DCG) Initialize(kc *keycontainer.KeyContainer) error {
	if err := d.checkInitialize("Initialize"); err != nil {
		return err
	}
	if kc == nil || len(kc.Key) == 0 {
		return newError(InvalidKey, "Initialize", nil)
	}
	if !dcgLegalSizes(d.hash.DigestSize()).Validate(len(kc.Key), len(kc.Nonce), 0) {
		return newError(InvalidKey, "Initialize", nil)
	}
	d.key = append([]byte(nil), kc.Key...)
	if len(kc.Nonce) == 8 {
		copy(d.counter[:], kc.Nonce)
	}
	if kc.Info != nil {
		d.dc = append([]byte(nil), kc.Info...)
	}
	d.hash.Update(d.counter[:])
	d.hash.Update(d.key)
	d.r = d.hash.Finalize()
	d.life = initialized
	return nil
}

func (d *DCG) Generate(out []byte) error {
	if err := d.checkGenerate("Generate", len(out)); err != nil {
		return err
	}
	return d.reseedLoop(out, d.fillChunk, d.reseed)
}

func (d *DCG) fillChunk(dst []byte) error {
	digestSize := d.hash.DigestSize()
	off := 0
	for off < len(dst) {
		incCounter(&d.counter, uint64(digestSize))
		d.hash.Update(d.counter[:])
		d.hash.Update(d.key)
		d.hash.Update(d.r)
		if d.dc != nil {
			d.hash.Update(d.dc)
		}
		tag := d.hash.Finalize()
		d.r = tag
		n := copy(dst[off:], tag)
		off += n
	}
	return nil
}

func (d *DCG) reseed() error {
	if d.provider == nil {
		return nil
	}
	fresh := make([]byte, d.hash.DigestSize())
	defer zeroBytes(fresh)
	if err := d.provider.Fill(fresh); err != nil {
		return err
	}
	d.hash.Update(d.key)
	d.hash.Update(d.r)
	d.hash.Update(fresh)
	d.key = d.hash.Finalize()
	d.hash.Update(d.counter[:])
	d.hash.Update(d.key)
	d.r = d.hash.Finalize()
	return nil
}

func (d *DCG) Update(seed []byte) error {
	if err := d.checkUpdate("Update"); err != nil {
		return err
	}
	if len(seed) == 0 {
		return newError(InvalidSize, "Update", nil)
	}
	d.key = append([]byte(nil), seed...)
	d.hash.Update(d.counter[:])
	d.hash.Update(d.key)
	d.r = d.hash.Finalize()
	return nil
}

func (d *DCG) ReseedThreshold() uint64          { return d.state.reseedThreshold }
func (d *DCG) SetReseedThreshold(n uint64) error { return d.state.setReseedThreshold("SetReseedThreshold", n) }
func (d *DCG) IsInitialized() bool               { return d.life != unconfigured && d.life != finalized }
func (d *DCG) SecurityStrength() int             { return d.securityStrength }
func (d *DCG) LegalKeySizes() keycontainer.LegalSizes {
	return dcgLegalSizes(d.hash.DigestSize())
}
func (d *DCG) MaxOutputSize() uint64 { return d.maxOutput }
func (d *DCG) MaxRequestSize() int   { return d.maxRequest }
func (d *DCG) MaxReseedCount() int   { return d.maxReseed }
func (d *DCG) Name() string          { return "DCG" }
func (d *DCG) Enumeral() Variant     { return DCGVariant }

func (d *DCG) Destroy() {
	d.hash.Zeroize()
	zeroBytes(d.key)
	zeroBytes(d.r)
	zeroBytes(d.dc)
	d.destroy()
}
