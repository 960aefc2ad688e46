// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import "github.com/QRCS-CORP/CEX-sub006/keycontainer"

// Variant identifies a concrete DRBG construction (spec.md §4.2).
type Variant int

const (
	// BCGVariant is the block-cipher counter-mode DRBG (AES-CTR).
	BCGVariant Variant = iota
	// CSGVariant is the cSHAKE-based DRBG.
	CSGVariant
	// HCGVariant is the HMAC counter-mode DRBG.
	HCGVariant
	// DCGVariant is the digest counter-mode DRBG.
	DCGVariant
)

func (v Variant) String() string {
	switch v {
	case BCGVariant:
		return "BCG"
	case CSGVariant:
		return "CSG"
	case HCGVariant:
		return "HCG"
	case DCGVariant:
		return "DCG"
	default:
		return "Unknown"
	}
}

// Drbg is the common contract every variant satisfies (spec.md §6). An
// instance is single-writer: methods take no lock, so concurrent calls
// against the same instance are not safe.
type Drbg interface {
	// Initialize seeds the generator from kc and transitions it from
	// Unconfigured to Initialized. It is an error to call Initialize twice.
	Initialize(kc *keycontainer.KeyContainer) error

	// Generate fills out completely or returns an error. It transitions
	// Initialized/Generating -> Generating, interleaving synchronous
	// reseeds (Reseeding) whenever the reseed threshold is crossed.
	Generate(out []byte) error

	// Update folds additional seed material into the running state without
	// resetting the reseed counter (spec.md §4.2's "Update" operation).
	Update(seed []byte) error

	// ReseedThreshold returns the current reseed threshold in bytes.
	ReseedThreshold() uint64
	// SetReseedThreshold changes the reseed threshold. It may be called
	// before or between Generate calls; a zero threshold is rejected with
	// InvalidParam, and a finalized instance returns IllegalOperation.
	SetReseedThreshold(n uint64) error

	IsInitialized() bool
	SecurityStrength() int
	LegalKeySizes() keycontainer.LegalSizes
	MaxOutputSize() uint64
	MaxRequestSize() int
	MaxReseedCount() int
	Name() string
	Enumeral() Variant

	// Destroy zeroizes all key material and transitions to Finalized.
	// Every other method returns IllegalOperation afterward.
	Destroy()
}

// GenerateAt fills out[off:off+length] with fresh output from d, the
// offset/length addressed form of Generate spec.md §6 lists alongside it
// (`generate_at(&mut [u8], off, len)`). Every variant shares the same
// slice-addressing semantics, so this is one free function rather than a
// method duplicated across BCG/CSG/HCG/DCG.
func GenerateAt(d Drbg, out []byte, off, length int) error {
	if off < 0 || length < 0 || off+length > len(out) {
		return newError(InvalidSize, "GenerateAt", nil)
	}
	return d.Generate(out[off : off+length])
}
