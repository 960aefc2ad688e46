// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import "fmt"

// Auto (ACP) combines every other provider: it XORs samples from SystemCSP,
// Jitter, EntropyCollector, and RdSeed so that a weakness in any single
// source does not compromise the combined output. This is spec.md §4.5's
// recommended default. SHAKE1024 generators are explicitly excluded from
// this default path per spec.md §9; callers must opt into SHAKE1024 (and
// CSX512) explicitly.
type Auto struct {
	sources []Provider
}

// NewAuto constructs the Auto provider over the default source set.
func NewAuto() *Auto {
	return &Auto{
		sources: []Provider{
			NewSystemCSP(),
			NewJitter(),
			NewEntropyCollector(),
			NewRdSeed(),
		},
	}
}

func (a *Auto) fill8(dst []byte) error {
	var acc [8]byte
	var tmp [8]byte
	found := false
	for _, s := range a.sources {
		if !s.IsAvailable() {
			continue
		}
		if err := s.Fill(tmp[:]); err != nil {
			continue
		}
		for i := range acc {
			acc[i] ^= tmp[i]
		}
		found = true
	}
	if !found {
		return fmt.Errorf("%w: no entropy source available", ErrUnavailable)
	}
	copy(dst, acc[:])
	return nil
}

func (a *Auto) Fill(out []byte) error {
	return fillFromFunc(out, a.fill8)
}

func (a *Auto) NextUint16() (uint16, error) { return nextUint16From(a.fill8) }
func (a *Auto) NextUint32() (uint32, error) { return nextUint32From(a.fill8) }
func (a *Auto) NextUint64() (uint64, error) { return nextUint64From(a.fill8) }

func (a *Auto) Reset() {
	for _, s := range a.sources {
		s.Reset()
	}
}

func (a *Auto) Name() string   { return "Auto" }
func (a *Auto) Enumeral() Kind { return ACP }
func (a *Auto) IsAvailable() bool {
	for _, s := range a.sources {
		if s.IsAvailable() {
			return true
		}
	}
	return false
}
