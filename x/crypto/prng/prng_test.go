// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package prng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/drbg"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/primitives"
)

func newKC(keyLen, nonceLen int) *keycontainer.KeyContainer {
	key := make([]byte, keyLen)
	for i := range key {
		key[i] = byte(i + 3)
	}
	var nonce []byte
	if nonceLen > 0 {
		nonce = make([]byte, nonceLen)
		for i := range nonce {
			nonce[i] = byte(0x10 + i)
		}
	}
	return keycontainer.New(key, nonce, nil)
}

func TestBufferedPRNG_GenerateAcrossMultipleRefills(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	p, err := NewSeeded(drbg.NewBCG(nil), newKC(32, 16), Config{BufferSize: MinBufferSize})
	req.NoError(err)

	out := make([]byte, MinBufferSize*3+7)
	req.NoError(p.Generate(out))
	is.NotEqual(make([]byte, len(out)), out)
}

func TestBufferedPRNG_RejectsUndersizedBuffer(t *testing.T) {
	t.Parallel()
	d := drbg.NewBCG(nil)
	require.NoError(t, d.Initialize(newKC(32, 16)))
	_, err := New(d, Config{BufferSize: 8})
	assert.Error(t, err)
}

// TestNextUint32In_UnbiasedBound_S5 is spec.md §8 scenario S5: rejection
// sampling over a non-power-of-two range must never return a value outside
// [0, max], and across many draws the distribution should not collapse onto
// a narrow subset (a coarse bias smoke test, not a full chi-squared suite).
func TestNextUint32In_UnbiasedBound_S5(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	p, err := NewSeeded(drbg.NewBCG(nil), newKC(32, 16), Config{BufferSize: MinBufferSize})
	req.NoError(err)

	const max = 200 // not a power of two minus one
	seen := make(map[uint32]int)
	for i := 0; i < 5000; i++ {
		v, err := p.NextUint32In(max)
		req.NoError(err)
		is.LessOrEqual(v, uint32(max))
		seen[v]++
	}
	is.Greater(len(seen), max/4, "draws should spread across a meaningful fraction of the range")
}

func TestNextUint32Range_RespectsBounds(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	p, err := NewSeeded(drbg.NewBCG(nil), newKC(32, 16), Config{BufferSize: MinBufferSize})
	req.NoError(err)

	for i := 0; i < 500; i++ {
		v, err := p.NextUint32Range(50, 60)
		req.NoError(err)
		is.GreaterOrEqual(v, uint32(50))
		is.LessOrEqual(v, uint32(60))
	}
}

func TestBCR_SmokeTest(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	r, err := NewBCR(newKC(32, 16), nil, Config{})
	req.NoError(err)
	v, err := r.NextUint64()
	req.NoError(err)
	_ = v
}

func TestCSR_SmokeTest(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	r, err := NewCSR(newKC(32, 16), primitives.SHAKE256, nil, Config{})
	req.NoError(err)
	_, err = r.NextUint32()
	req.NoError(err)
}

func TestHCR_SmokeTest(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	r, err := NewHCR(newKC(64, 8), primitives.SHA512, nil, Config{})
	req.NoError(err)
	_, err = r.NextUint16()
	req.NoError(err)
}

func TestDCR_SmokeTest(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	r, err := NewDCR(newKC(64, 8), primitives.SHA512, nil, Config{})
	req.NoError(err)
	_, err = r.NextUint64()
	req.NoError(err)
}

func TestBufferedPRNG_Reset_ForcesRefill(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	p, err := NewSeeded(drbg.NewBCG(nil), newKC(32, 16), Config{BufferSize: MinBufferSize})
	req.NoError(err)
	_, err = p.NextUint32()
	req.NoError(err)
	before := p.cursor
	p.Reset()
	is.Equal(len(p.buf), p.cursor)
	is.NotEqual(before, p.cursor)
}
