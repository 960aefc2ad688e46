// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prng

import (
	"encoding/binary"
	"fmt"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/drbg"
)

// DefaultBufferSize is used when Config.BufferSize is zero.
const DefaultBufferSize = 1024

// MinBufferSize is the smallest buffer BufferedPRNG accepts (spec.md §4.4).
const MinBufferSize = 64

// Config configures a BufferedPRNG.
type Config struct {
	// BufferSize is the internal refill size in bytes. Defaults to
	// DefaultBufferSize; must be >= MinBufferSize.
	BufferSize int
}

// BufferedPRNG wraps a drbg.Drbg with a refillable buffer and cursor, and
// unbiased ranged-integer sampling on top (spec.md §4.4). It is the shared
// engine behind BCR, CSR, HCR, and DCR.
type BufferedPRNG struct {
	d      drbg.Drbg
	buf    []byte
	cursor int
}

// New constructs a BufferedPRNG wrapping an already-initialized d.
func New(d drbg.Drbg, cfg Config) (*BufferedPRNG, error) {
	if !d.IsInitialized() {
		return nil, fmt.Errorf("prng: underlying drbg is not initialized")
	}
	size := cfg.BufferSize
	if size == 0 {
		size = DefaultBufferSize
	}
	if size < MinBufferSize {
		return nil, fmt.Errorf("prng: buffer size %d below minimum %d", size, MinBufferSize)
	}
	return &BufferedPRNG{d: d, buf: make([]byte, size), cursor: size}, nil
}

// NewSeeded constructs a BufferedPRNG, initializing d from kc first.
func NewSeeded(d drbg.Drbg, kc *keycontainer.KeyContainer, cfg Config) (*BufferedPRNG, error) {
	if err := d.Initialize(kc); err != nil {
		return nil, err
	}
	return New(d, cfg)
}

// refill asks the DRBG for a fresh buffer's worth of bytes, reusing the same
// instance (no re-initialization), per spec.md §4.4. read drains the unread
// remainder of the buffer before calling it.
func (p *BufferedPRNG) refill() error {
	if err := p.d.Generate(p.buf); err != nil {
		return err
	}
	p.cursor = 0
	return nil
}

// read returns exactly n fresh bytes: it drains the unread remainder of the
// buffer first, then refills and takes the rest. n must not exceed
// len(p.buf).
func (p *BufferedPRNG) read(n int) ([]byte, error) {
	if p.cursor+n <= len(p.buf) {
		out := p.buf[p.cursor : p.cursor+n]
		p.cursor += n
		return out, nil
	}
	out := make([]byte, 0, n)
	out = append(out, p.buf[p.cursor:]...)
	if err := p.refill(); err != nil {
		return nil, err
	}
	need := n - len(out)
	out = append(out, p.buf[:need]...)
	p.cursor = need
	return out, nil
}

// Generate fills out with fresh pseudo-random bytes, satisfying requests
// larger than the internal buffer by refilling as many times as necessary.
func (p *BufferedPRNG) Generate(out []byte) error {
	off := 0
	for off < len(out) {
		chunk := len(out) - off
		if chunk > len(p.buf) {
			chunk = len(p.buf)
		}
		word, err := p.read(chunk)
		if err != nil {
			return err
		}
		copy(out[off:off+chunk], word)
		off += chunk
	}
	return nil
}

func (p *BufferedPRNG) NextUint16() (uint16, error) {
	word, err := p.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(word), nil
}

func (p *BufferedPRNG) NextUint32() (uint32, error) {
	word, err := p.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(word), nil
}

func (p *BufferedPRNG) NextUint64() (uint64, error) {
	word, err := p.read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(word), nil
}

// NextUint32In returns an unbiased uint32 in [0, max] via rejection
// sampling (spec.md §4.4, §8 scenario S5).
func (p *BufferedPRNG) NextUint32In(max uint32) (uint32, error) {
	v, err := p.rejectionSampleChecked(uint64(max))
	return uint32(v), err
}

// NextUint32Range returns an unbiased uint32 in [min, max].
func (p *BufferedPRNG) NextUint32Range(min, max uint32) (uint32, error) {
	v, err := p.NextUint32In(max - min)
	return v + min, err
}

// NextUint64In returns an unbiased uint64 in [0, max] via rejection
// sampling.
func (p *BufferedPRNG) NextUint64In(max uint64) (uint64, error) {
	return p.rejectionSampleChecked(max)
}

// NextUint64Range returns an unbiased uint64 in [min, max].
func (p *BufferedPRNG) NextUint64Range(min, max uint64) (uint64, error) {
	v, err := p.NextUint64In(max - min)
	return v + min, err
}

// rejectionSampleChecked draws from rejectionSample, threading any
// underlying read error back out instead of panicking.
func (p *BufferedPRNG) rejectionSampleChecked(max uint64) (uint64, error) {
	var readErr error
	v := rejectionSample(max, func(n int) []byte {
		word, err := p.read(n)
		if err != nil {
			readErr = err
			return make([]byte, n)
		}
		return word
	})
	return v, readErr
}

// Reset discards any buffered bytes, forcing the next read to refill from
// the underlying DRBG.
func (p *BufferedPRNG) Reset() {
	p.cursor = len(p.buf)
}
