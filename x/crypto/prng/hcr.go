// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prng

import (
	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/drbg"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/entropy"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/primitives"
)

// HCR is the buffered PRNG over HCG (HMAC counter DRBG).
type HCR struct{ *BufferedPRNG }

// NewHCR constructs an HCR seeded from kc, using the given digest.
func NewHCR(kc *keycontainer.KeyContainer, kind primitives.DigestKind, provider entropy.Provider, cfg Config) (*HCR, error) {
	d, err := drbg.NewHCG(kind, provider)
	if err != nil {
		return nil, err
	}
	p, err := NewSeeded(d, kc, cfg)
	if err != nil {
		return nil, err
	}
	return &HCR{p}, nil
}
