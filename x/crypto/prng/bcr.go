// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prng

import (
	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/drbg"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/entropy"
)

// BCR is the buffered PRNG over BCG (block-cipher counter DRBG).
type BCR struct{ *BufferedPRNG }

// NewBCR constructs a BCR seeded from kc, reseeding automatically from
// provider when the DRBG's reseed threshold is crossed.
func NewBCR(kc *keycontainer.KeyContainer, provider entropy.Provider, cfg Config) (*BCR, error) {
	p, err := NewSeeded(drbg.NewBCG(provider), kc, cfg)
	if err != nil {
		return nil, err
	}
	return &BCR{p}, nil
}
