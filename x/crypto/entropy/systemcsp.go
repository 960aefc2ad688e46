// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import "crypto/rand"

// SystemCSP sources entropy from the operating system's cryptographic
// service provider via crypto/rand, exactly as sixafter/aes-ctr-drbg's
// newDRBG and sixafter/prng-chacha's newCipher seed themselves.
type SystemCSP struct{}

// NewSystemCSP constructs a SystemCSP provider.
func NewSystemCSP() *SystemCSP {
	return &SystemCSP{}
}

func (p *SystemCSP) fill8(dst []byte) error {
	_, err := rand.Read(dst)
	return err
}

func (p *SystemCSP) Fill(out []byte) error {
	_, err := rand.Read(out)
	return err
}

func (p *SystemCSP) NextUint16() (uint16, error) { return nextUint16From(p.fill8) }
func (p *SystemCSP) NextUint32() (uint32, error) { return nextUint32From(p.fill8) }
func (p *SystemCSP) NextUint64() (uint64, error) { return nextUint64From(p.fill8) }

func (p *SystemCSP) Reset()          {}
func (p *SystemCSP) Name() string    { return "SystemCSP" }
func (p *SystemCSP) Enumeral() Kind  { return CSP }
func (p *SystemCSP) IsAvailable() bool {
	var probe [1]byte
	return p.Fill(probe[:]) == nil
}
