// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package entropy implements the narrow EntropyProvider capability C2
// generators consume for reseeding (spec.md §4.5, component C5). The spec
// fixes only the contract, not the collection mechanism, so every concrete
// provider here is a pragmatic, pure-Go approximation rather than a
// hardware-backed implementation — callers that need a specific hardware
// entropy source should wrap it behind the Provider interface themselves.
package entropy

import (
	"encoding/binary"
	"fmt"
)

// Kind enumerates the entropy provider variants spec.md §6 names.
type Kind int

const (
	None Kind = iota
	// ACP is the Auto Collection Provider: combines every other source.
	ACP
	// CJP is a CPU-jitter based provider.
	CJP
	// CSP is the system cryptographic service provider (crypto/rand).
	CSP
	// ECP is an entropy-collector provider sourced from runtime state.
	ECP
	// RDP approximates a hardware RDSEED provider; see rdseed.go.
	RDP
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case ACP:
		return "ACP"
	case CJP:
		return "CJP"
	case CSP:
		return "CSP"
	case ECP:
		return "ECP"
	case RDP:
		return "RDP"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrUnavailable is returned when a provider is invoked on a platform where
// it cannot source entropy.
var ErrUnavailable = fmt.Errorf("entropy: provider unavailable")

// ErrContinuousTest is returned by the SelfTest decorator when two
// consecutive 8-byte samples from the wrapped provider are identical (the
// FIPS 140-2 continuous RNG test; spec.md §4.5, §8 property 9).
var ErrContinuousTest = fmt.Errorf("entropy: continuous RNG self-test failed")

// Provider is the capability C2 DRBGs consume for reseed material.
// Implementations must be safe to use from a single goroutine at a time;
// spec.md §5 requires callers to add their own lock if sharing one instance.
type Provider interface {
	// Fill writes len(out) bytes of entropy into out.
	Fill(out []byte) error

	NextUint16() (uint16, error)
	NextUint32() (uint32, error)
	NextUint64() (uint64, error)

	// Reset clears any internal accumulator state.
	Reset()

	Name() string
	Enumeral() Kind
	IsAvailable() bool
}

// fillFromFunc is a helper shared by every concrete provider: it repeatedly
// calls fill8 (which must write exactly 8 bytes of fresh entropy per call)
// to satisfy an arbitrary-length Fill request.
func fillFromFunc(out []byte, fill8 func(dst []byte) error) error {
	var buf [8]byte
	for len(out) > 0 {
		if err := fill8(buf[:]); err != nil {
			return err
		}
		n := copy(out, buf[:])
		out = out[n:]
	}
	return nil
}

func nextUint16From(fill8 func(dst []byte) error) (uint16, error) {
	var buf [8]byte
	if err := fill8(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:2]), nil
}

func nextUint32From(fill8 func(dst []byte) error) (uint32, error) {
	var buf [8]byte
	if err := fill8(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:4]), nil
}

func nextUint64From(fill8 func(dst []byte) error) (uint64, error) {
	var buf [8]byte
	if err := fill8(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:8]), nil
}
