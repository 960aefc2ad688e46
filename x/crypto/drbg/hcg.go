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

func hcgLegalSizes(tagSize int) keycontainer.LegalSizes {
	return keycontainer.LegalSizes{
		{KeySize: tagSize, NonceSize: 8},
		{KeySize: tagSize * 2, NonceSize: 8, Recommended: true},
	}
}

// HCG is the HMAC counter-mode DRBG. It is grounded directly on HCG.h's
// Derive/Generate cycle: the HMAC is first keyed with the seed, an internal
// state counter Sc (seeded from the optional nonce) is HMAC'd together with
// the running state R and the distribution code Dc on every iteration, and
// the finalized tag both becomes R for the next iteration and is copied to
// output.
type HCG struct {
	*state

	kind DigestKindAlias
	mac  primitives.HMACEngine

	counter [8]byte // Sc
	r       []byte  // running state R
	dc      []byte  // distribution code (info)

	provider entropy.Provider
}

// DigestKindAlias re-exports primitives.DigestKind so callers of this
// package need not import primitives directly to select HCG's digest.
type DigestKindAlias = primitives.DigestKind

// NewHCG constructs an unconfigured HCG over the given digest.
func NewHCG(kind DigestKindAlias, provider entropy.Provider) (*HCG, error) {
	mac, err := primitives.NewHMACEngine(kind)
	if err != nil {
		return nil, err
	}
	return &HCG{
		state:    newState(mac.TagSize()*8, maxRequestDigest, uint64(mac.TagSize())*1000, provider),
		kind:     kind,
		mac:      mac,
		provider: provider,
	}, nil
}

func (h *HCG) Initialize(kc *keycontainer.KeyContainer) error {
	if err := h.checkInitialize("Initialize"); err != nil {
		return err
	}
	if kc == nil {
		return newError(InvalidKey, "Initialize", nil)
	}
	if !hcgLegalSizes(h.mac.TagSize()).Validate(len(kc.Key), len(kc.Nonce), 0) {
		return newError(InvalidKey, "Initialize", nil)
	}
	if err := h.mac.Initialize(kc); err != nil {
		return newError(InvalidKey, "Initialize", err)
	}
	if len(kc.Nonce) == 8 {
		copy(h.counter[:], kc.Nonce)
	}
	if kc.Info != nil {
		h.dc = append([]byte(nil), kc.Info...)
	}
	// Derive: fold the state counter and key material through the HMAC once
	// to obtain the initial running state R (HCG.h step "Dk = Df(Sc||K||P)").
	h.mac.Update(h.counter[:])
	h.mac.Update(kc.Key)
	h.r = h.mac.Finalize()
	h.life = initialized
	return nil
}

func (h *HCG) Generate(out []byte) error {
	if err := h.checkGenerate("Generate", len(out)); err != nil {
		return err
	}
	return h.reseedLoop(out, h.fillChunk, h.reseed)
}

// fillChunk implements HCG.h's generate step: increment Sc by the tag size,
// MAC (Sc || R || Dc), copy the tag to output and carry it forward as R.
func (h *HCG) fillChunk(dst []byte) error {
	tagSize := h.mac.TagSize()
	off := 0
	for off < len(dst) {
		incCounter(&h.counter, uint64(tagSize))
		h.mac.Update(h.counter[:])
		h.mac.Update(h.r)
		if h.dc != nil {
			h.mac.Update(h.dc)
		}
		tag := h.mac.Finalize()
		h.r = tag
		n := copy(dst[off:], tag)
		off += n
	}
	return nil
}

func (h *HCG) reseed() error {
	if h.provider == nil {
		return nil
	}
	fresh := make([]byte, h.mac.TagSize())
	defer zeroBytes(fresh)
	if err := h.provider.Fill(fresh); err != nil {
		return err
	}
	// Re-key: derive a new HMAC key from the current running state and
	// fresh provider entropy, matching HCG.h's "Dk = Df(K), re-key" step.
	h.mac.Update(h.r)
	h.mac.Update(fresh)
	newKey := h.mac.Finalize()
	if err := h.mac.Initialize(keycontainer.New(newKey, nil, nil)); err != nil {
		return err
	}
	h.mac.Update(h.counter[:])
	h.mac.Update(newKey)
	h.r = h.mac.Finalize()
	return nil
}

func (h *HCG) Update(seed []byte) error {
	if err := h.checkUpdate("Update"); err != nil {
		return err
	}
	if len(seed) == 0 {
		return newError(InvalidSize, "Update", nil)
	}
	if err := h.mac.Initialize(keycontainer.New(seed, nil, nil)); err != nil {
		return newError(InvalidKey, "Update", err)
	}
	h.mac.Update(h.counter[:])
	h.mac.Update(seed)
	h.r = h.mac.Finalize()
	return nil
}

func incCounter(v *[8]byte, delta uint64) {
	cur := binary.BigEndian.Uint64(v[:])
	binary.BigEndian.PutUint64(v[:], cur+delta)
}

func (h *HCG) ReseedThreshold() uint64          { return h.state.reseedThreshold }
func (h *HCG) SetReseedThreshold(n uint64) error { return h.state.setReseedThreshold("SetReseedThreshold", n) }
func (h *HCG) IsInitialized() bool               { return h.life != unconfigured && h.life != finalized }
func (h *HCG) SecurityStrength() int             { return h.securityStrength }
func (h *HCG) LegalKeySizes() keycontainer.LegalSizes {
	return hcgLegalSizes(h.mac.TagSize())
}
func (h *HCG) MaxOutputSize() uint64 { return h.maxOutput }
func (h *HCG) MaxRequestSize() int   { return h.maxRequest }
func (h *HCG) MaxReseedCount() int   { return h.maxReseed }
func (h *HCG) Name() string          { return "HCG" }
func (h *HCG) Enumeral() Variant     { return HCGVariant }

func (h *HCG) Destroy() {
	h.mac.Zeroize()
	zeroBytes(h.r)
	zeroBytes(h.dc)
	h.destroy()
}
