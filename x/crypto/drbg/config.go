// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"fmt"

	"github.com/QRCS-CORP/CEX-sub006/x/crypto/entropy"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/primitives"
)

// Config configures New, following the functional-options pattern the
// teacher's ctrdrbg.Config uses.
type Config struct {
	Provider   entropy.Provider
	DigestKind primitives.DigestKind
	XOFKind    primitives.XOFKind
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the recommended configuration: a self-tested Auto
// entropy provider, SHA-512 for HCG/DCG, and SHAKE256 for CSG.
func DefaultConfig() Config {
	return Config{
		Provider:   entropy.WithSelfTest(entropy.NewAuto()),
		DigestKind: primitives.SHA512,
		XOFKind:    primitives.SHAKE256,
	}
}

// WithProvider overrides the entropy provider used for automatic reseeding.
// Pass nil to disable automatic reseeding entirely.
func WithProvider(p entropy.Provider) Option {
	return func(c *Config) { c.Provider = p }
}

// WithDigestKind selects the hash function HCG/DCG use.
func WithDigestKind(k primitives.DigestKind) Option {
	return func(c *Config) { c.DigestKind = k }
}

// WithXOFKind selects the sponge rate CSG uses.
func WithXOFKind(k primitives.XOFKind) Option {
	return func(c *Config) { c.XOFKind = k }
}

// New constructs an unconfigured Drbg of the requested variant. Callers
// must still call Initialize before the first Generate.
func New(variant Variant, opts ...Option) (Drbg, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch variant {
	case BCGVariant:
		return NewBCG(cfg.Provider), nil
	case CSGVariant:
		return NewCSG(cfg.XOFKind, cfg.Provider), nil
	case HCGVariant:
		return NewHCG(cfg.DigestKind, cfg.Provider)
	case DCGVariant:
		return NewDCG(cfg.DigestKind, cfg.Provider)
	default:
		return nil, fmt.Errorf("drbg: unsupported variant %v", variant)
	}
}
