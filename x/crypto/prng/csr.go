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

// CSR is the buffered PRNG over CSG (cSHAKE DRBG).
type CSR struct{ *BufferedPRNG }

// NewCSR constructs a CSR seeded from kc, using the given sponge rate.
func NewCSR(kc *keycontainer.KeyContainer, kind primitives.XOFKind, provider entropy.Provider, cfg Config) (*CSR, error) {
	p, err := NewSeeded(drbg.NewCSG(kind, provider), kc, cfg)
	if err != nil {
		return nil, err
	}
	return &CSR{p}, nil
}
