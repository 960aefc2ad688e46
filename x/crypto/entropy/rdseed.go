// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

// RdSeed approximates the Intel RDSEED hardware instruction provider.
// Go's standard library exposes no portable RDSEED intrinsic (spec.md §1
// explicitly places "hardware-specific intrinsics" out of scope), so this
// provider delegates to the operating system CSP while reporting its own
// Kind/Name — any platform-specific RDSEED backend can be swapped in later
// behind this same Provider contract without touching callers.
type RdSeed struct {
	csp *SystemCSP
}

// NewRdSeed constructs an RdSeed provider.
func NewRdSeed() *RdSeed {
	return &RdSeed{csp: NewSystemCSP()}
}

func (r *RdSeed) Fill(out []byte) error { return r.csp.Fill(out) }

func (r *RdSeed) NextUint16() (uint16, error) { return r.csp.NextUint16() }
func (r *RdSeed) NextUint32() (uint32, error) { return r.csp.NextUint32() }
func (r *RdSeed) NextUint64() (uint64, error) { return r.csp.NextUint64() }

func (r *RdSeed) Reset()           {}
func (r *RdSeed) Name() string     { return "RdSeed" }
func (r *RdSeed) Enumeral() Kind   { return RDP }
func (r *RdSeed) IsAvailable() bool { return r.csp.IsAvailable() }
