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

var csgLegalSizes = keycontainer.LegalSizes{
	{KeySize: 16, NonceSize: 16},
	{KeySize: 32, NonceSize: 16, Recommended: true},
	{KeySize: 64, NonceSize: 16},
}

// csgName is the NIST function-name string absorbed into every cSHAKE
// customization, domain-separating CSG output from any other user of the
// same sponge family.
var csgName = []byte("CSG")

// CSG is the cSHAKE-based DRBG: a customizable SHAKE sponge absorbs the key,
// nonce, and info (as the cSHAKE customization string) and is squeezed
// directly for output. There is no teacher file for this construction
// (ctrdrbg/prng-chacha are both block-cipher based); it is grounded on
// primitives.XOF (itself grounded on golang.org/x/crypto/sha3, the pack's
// only sponge library) and on HCG.h's counter/reseed cycle for the shared
// state machine wiring.
type CSG struct {
	*state

	xof      primitives.XOF
	kind     primitives.XOFKind
	provider entropy.Provider
}

// NewCSG constructs an unconfigured CSG using the given sponge rate.
func NewCSG(kind primitives.XOFKind, provider entropy.Provider) *CSG {
	strength := 256
	switch kind {
	case primitives.SHAKE128:
		strength = 128
	case primitives.SHAKE512:
		strength = 512
	case primitives.SHAKE1024:
		strength = 1024
	}
	return &CSG{
		state:    newState(strength, maxRequestCShake, 1<<20, provider),
		kind:     kind,
		provider: provider,
	}
}

func (c *CSG) Initialize(kc *keycontainer.KeyContainer) error {
	if err := c.checkInitialize("Initialize"); err != nil {
		return err
	}
	if kc == nil || len(kc.Key) == 0 {
		return newError(InvalidKey, "Initialize", nil)
	}
	if !csgLegalSizes.Validate(len(kc.Key), len(kc.Nonce), 0) {
		return newError(InvalidKey, "Initialize", nil)
	}
	xof, err := primitives.NewCShake(c.kind, csgName, kc.Info)
	if err != nil {
		return newError(InvalidInfo, "Initialize", err)
	}
	xof.Absorb(kc.Key)
	xof.Absorb(kc.Nonce)
	c.xof = xof
	c.life = initialized
	return nil
}

func (c *CSG) Generate(out []byte) error {
	if err := c.checkGenerate("Generate", len(out)); err != nil {
		return err
	}
	return c.reseedLoop(out, c.squeeze, c.reseed)
}

func (c *CSG) squeeze(dst []byte) error {
	copy(dst, c.xof.Squeeze(len(dst)))
	return nil
}

func (c *CSG) reseed() error {
	if c.provider == nil {
		return nil
	}
	return c.reseedSponge()
}

// reseedSponge absorbs fresh entropy into the live sponge state. cSHAKE
// permits further Absorb calls between Squeeze calls only if the underlying
// sponge has not yet squeezed; golang.org/x/crypto/sha3's ShakeHash forbids
// Write after Read, so CSG reseeds by rebuilding the sponge from a fresh
// customization absorbing both fresh entropy and a fold of the previous
// state, preserving forward secrecy without requiring a writable-after-read
// sponge.
func (c *CSG) reseedSponge() error {
	fresh := make([]byte, 64)
	defer zeroBytes(fresh)
	if err := c.provider.Fill(fresh); err != nil {
		return err
	}
	carry := c.xof.Squeeze(64)
	defer zeroBytes(carry)

	xof, err := primitives.NewCShake(c.kind, csgName, nil)
	if err != nil {
		return err
	}
	xof.Absorb(fresh)
	xof.Absorb(carry)
	c.xof = xof
	return nil
}

func (c *CSG) Update(seed []byte) error {
	if err := c.checkUpdate("Update"); err != nil {
		return err
	}
	if len(seed) == 0 {
		return newError(InvalidSize, "Update", nil)
	}
	carry := c.xof.Squeeze(64)
	defer zeroBytes(carry)
	xof, err := primitives.NewCShake(c.kind, csgName, nil)
	if err != nil {
		return newError(InvalidInfo, "Update", err)
	}
	xof.Absorb(seed)
	xof.Absorb(carry)
	c.xof = xof
	return nil
}

func (c *CSG) ReseedThreshold() uint64              { return c.state.reseedThreshold }
func (c *CSG) SetReseedThreshold(n uint64) error     { return c.state.setReseedThreshold("SetReseedThreshold", n) }
func (c *CSG) IsInitialized() bool                   { return c.life != unconfigured && c.life != finalized }
func (c *CSG) SecurityStrength() int                 { return c.securityStrength }
func (c *CSG) LegalKeySizes() keycontainer.LegalSizes { return csgLegalSizes }
func (c *CSG) MaxOutputSize() uint64                  { return c.maxOutput }
func (c *CSG) MaxRequestSize() int                    { return c.maxRequest }
func (c *CSG) MaxReseedCount() int                    { return c.maxReseed }
func (c *CSG) Name() string                           { return "CSG" }
func (c *CSG) Enumeral() Variant                      { return CSGVariant }

func (c *CSG) Destroy() {
	c.xof = nil
	c.destroy()
}
