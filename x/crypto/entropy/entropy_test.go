// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedProvider always returns the same bytes; used to drive the continuous
// RNG self-test deterministically.
type fixedProvider struct {
	b byte
}

func (f *fixedProvider) Fill(out []byte) error {
	for i := range out {
		out[i] = f.b
	}
	return nil
}
func (f *fixedProvider) NextUint16() (uint16, error) { return 0, nil }
func (f *fixedProvider) NextUint32() (uint32, error) { return 0, nil }
func (f *fixedProvider) NextUint64() (uint64, error) { return 0, nil }
func (f *fixedProvider) Reset()                      {}
func (f *fixedProvider) Name() string                { return "fixed" }
func (f *fixedProvider) Enumeral() Kind              { return None }
func (f *fixedProvider) IsAvailable() bool           { return true }

func TestSelfTest_DetectsRepeat(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	p := WithSelfTest(&fixedProvider{b: 0x42})
	buf := make([]byte, 8)

	is.NoError(p.Fill(buf), "first sample has nothing to compare against")
	err := p.Fill(buf)
	is.ErrorIs(err, ErrContinuousTest, "identical consecutive samples must fail the continuous test")
}

func TestSelfTest_AllowsDistinctSamples(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	p := WithSelfTest(NewSystemCSP())
	buf := make([]byte, 8)
	for i := 0; i < 100; i++ {
		is.NoError(p.Fill(buf))
	}
}

func TestSystemCSP_Available(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	is.True(NewSystemCSP().IsAvailable())
}

func TestJitter_ProducesVaryingOutput(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	req := require.New(t)

	j := NewJitter()
	a := make([]byte, 16)
	b := make([]byte, 16)
	req.NoError(j.Fill(a))
	req.NoError(j.Fill(b))
	is.NotEqual(a, b)
}

func TestEntropyCollector_ProducesVaryingOutput(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	req := require.New(t)

	c := NewEntropyCollector()
	a := make([]byte, 16)
	b := make([]byte, 16)
	req.NoError(c.Fill(a))
	req.NoError(c.Fill(b))
	is.NotEqual(a, b)
}

func TestAuto_CombinesSources(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	req := require.New(t)

	a := NewAuto()
	is.True(a.IsAvailable())
	out := make([]byte, 32)
	req.NoError(a.Fill(out))
	is.NotEqual(make([]byte, 32), out)
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	is.Equal("ACP", ACP.String())
	is.Equal("CSP", CSP.String())
	is.Equal("RDP", RDP.String())
}
