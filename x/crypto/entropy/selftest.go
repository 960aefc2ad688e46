// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import "bytes"

// SelfTest wraps a Provider with the mandatory FIPS 140-2 continuous RNG
// test (spec.md §4.5, §8 property 9): the last 8 bytes of the previous
// sample are retained, and if a new 8-byte sample is bit-identical to it,
// Fill/NextUintXX return ErrContinuousTest instead of the (suspect) sample.
//
// Every concrete Provider should be wrapped in a SelfTest before it is
// handed to a DRBG for reseeding.
type SelfTest struct {
	inner Provider
	prev  [8]byte
	have  bool
}

// WithSelfTest decorates inner with the continuous RNG test.
func WithSelfTest(inner Provider) *SelfTest {
	return &SelfTest{inner: inner}
}

func (s *SelfTest) sample8() ([8]byte, error) {
	var buf [8]byte
	if err := s.inner.Fill(buf[:]); err != nil {
		return buf, err
	}
	if s.have && bytes.Equal(buf[:], s.prev[:]) {
		return buf, ErrContinuousTest
	}
	s.prev = buf
	s.have = true
	return buf, nil
}

func (s *SelfTest) fill8(dst []byte) error {
	buf, err := s.sample8()
	if err != nil {
		return err
	}
	copy(dst, buf[:])
	return nil
}

func (s *SelfTest) Fill(out []byte) error {
	return fillFromFunc(out, s.fill8)
}

func (s *SelfTest) NextUint16() (uint16, error) { return nextUint16From(s.fill8) }
func (s *SelfTest) NextUint32() (uint32, error) { return nextUint32From(s.fill8) }
func (s *SelfTest) NextUint64() (uint64, error) { return nextUint64From(s.fill8) }

func (s *SelfTest) Reset() {
	s.have = false
	s.prev = [8]byte{}
	s.inner.Reset()
}

func (s *SelfTest) Name() string     { return "SelfTest(" + s.inner.Name() + ")" }
func (s *SelfTest) Enumeral() Kind   { return s.inner.Enumeral() }
func (s *SelfTest) IsAvailable() bool { return s.inner.IsAvailable() }
