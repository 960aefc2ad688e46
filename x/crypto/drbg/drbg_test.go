// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/entropy"
	"github.com/QRCS-CORP/CEX-sub006/x/crypto/primitives"
)

// fakeProvider deals out a fixed, counting byte stream so reseed behavior is
// deterministic and inspectable across tests.
type fakeProvider struct{ n byte }

func (f *fakeProvider) Fill(out []byte) error {
	for i := range out {
		f.n++
		out[i] = f.n
	}
	return nil
}
func (f *fakeProvider) NextUint16() (uint16, error) { return 0, nil }
func (f *fakeProvider) NextUint32() (uint32, error) { return 0, nil }
func (f *fakeProvider) NextUint64() (uint64, error) { return 0, nil }
func (f *fakeProvider) Reset()                      { f.n = 0 }
func (f *fakeProvider) Name() string                { return "fake" }
func (f *fakeProvider) Enumeral() entropy.Kind       { return entropy.None }
func (f *fakeProvider) IsAvailable() bool            { return true }

func newKC(keyLen, nonceLen int) *keycontainer.KeyContainer {
	key := make([]byte, keyLen)
	for i := range key {
		key[i] = byte(i + 1)
	}
	var nonce []byte
	if nonceLen > 0 {
		nonce = make([]byte, nonceLen)
		for i := range nonce {
			nonce[i] = byte(0xA0 + i)
		}
	}
	return keycontainer.New(key, nonce, nil)
}

func buildVariant(t *testing.T, v Variant) Drbg {
	t.Helper()
	var (
		d   Drbg
		err error
	)
	switch v {
	case BCGVariant:
		d = NewBCG(nil)
		require.NoError(t, d.Initialize(newKC(32, 16)))
	case CSGVariant:
		d = NewCSG(primitives.SHAKE256, nil)
		require.NoError(t, d.Initialize(newKC(32, 16)))
	case HCGVariant:
		d, err = NewHCG(primitives.SHA512, nil)
		require.NoError(t, err)
		require.NoError(t, d.Initialize(newKC(64, 8)))
	case DCGVariant:
		d, err = NewDCG(primitives.SHA512, nil)
		require.NoError(t, err)
		require.NoError(t, d.Initialize(newKC(64, 8)))
	}
	return d
}

var allVariants = []Variant{BCGVariant, CSGVariant, HCGVariant, DCGVariant}

func TestDrbg_GenerateProducesNonZeroOutput(t *testing.T) {
	t.Parallel()
	for _, v := range allVariants {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			t.Parallel()
			is := assert.New(t)
			d := buildVariant(t, v)
			out := make([]byte, 128)
			is.NoError(d.Generate(out))
			is.NotEqual(make([]byte, 128), out, "generator must not emit an all-zero block")
		})
	}
}

func TestDrbg_DeterministicForSameSeed(t *testing.T) {
	t.Parallel()
	for _, v := range allVariants {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			t.Parallel()
			is := assert.New(t)
			a := buildVariant(t, v)
			b := buildVariant(t, v)
			outA := make([]byte, 96)
			outB := make([]byte, 96)
			is.NoError(a.Generate(outA))
			is.NoError(b.Generate(outB))
			is.Equal(outA, outB, "identical seed material must produce identical output")
		})
	}
}

func TestDrbg_GenerateBeforeInitialize(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	b := NewBCG(nil)
	err := b.Generate(make([]byte, 16))
	req.Error(err)
	var de *Error
	req.ErrorAs(err, &de)
	req.Equal(NotInitialized, de.Kind)
}

func TestDrbg_DoubleInitializeRejected(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	b := NewBCG(nil)
	req.NoError(b.Initialize(newKC(32, 16)))
	err := b.Initialize(newKC(32, 16))
	req.Error(err)
	var de *Error
	req.ErrorAs(err, &de)
	req.Equal(IllegalOperation, de.Kind)
}

func TestDrbg_InvalidKeySizeRejected(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	b := NewBCG(nil)
	err := b.Initialize(newKC(7, 16))
	req.Error(err)
	var de *Error
	req.ErrorAs(err, &de)
	req.Equal(InvalidKey, de.Kind)
}

func TestDrbg_MaxRequestSizeEnforced(t *testing.T) {
	t.Parallel()
	is := assert.New(t)
	b := NewBCG(nil)
	require.NoError(t, b.Initialize(newKC(32, 16)))
	b.state.maxRequest = 10
	err := b.Generate(make([]byte, 11))
	var de *Error
	is.ErrorAs(err, &de)
	is.Equal(MaxRequest, de.Kind)
}

// TestBCG_ReseedThreshold_S6 drives a 256-byte request against a 64-byte
// reseed threshold and asserts exactly four synchronous reseeds occur, each
// visible within the single Generate call (spec.md §8 scenario S6).
func TestBCG_ReseedThreshold_S6(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	b := NewBCG(&fakeProvider{})
	req.NoError(b.Initialize(newKC(32, 16)))
	req.NoError(b.SetReseedThreshold(64))

	out := make([]byte, 256)
	req.NoError(b.Generate(out))
	is.Equal(4, b.state.reseedRequests)

	for i := 0; i < 4; i++ {
		chunk := out[i*64 : (i+1)*64]
		for j := i + 1; j < 4; j++ {
			other := out[j*64 : (j+1)*64]
			is.False(bytes.Equal(chunk, other), "reseeded blocks must not repeat")
		}
	}
}

// TestHCG_StreamEquivalence_S3 checks that splitting one long Generate call
// into two 512-byte calls (with no reseed crossing) yields the same
// keystream as one 1024-byte call (spec.md §8 scenario S3). Each Generate
// call starts on a fresh tag and unused tag bytes are not carried over, so
// the split falls on a tag-size boundary.
func TestHCG_StreamEquivalence_S3(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	whole, err := NewHCG(primitives.SHA512, nil)
	req.NoError(err)
	req.NoError(whole.Initialize(newKC(64, 8)))
	req.NoError(whole.SetReseedThreshold(1 << 20))
	wholeOut := make([]byte, 1024)
	req.NoError(whole.Generate(wholeOut))

	split, err := NewHCG(primitives.SHA512, nil)
	req.NoError(err)
	req.NoError(split.Initialize(newKC(64, 8)))
	req.NoError(split.SetReseedThreshold(1 << 20))
	splitOut := make([]byte, 1024)
	req.NoError(split.Generate(splitOut[:512]))
	req.NoError(split.Generate(splitOut[512:]))

	is.Equal(wholeOut, splitOut)
}

func TestDrbg_DestroyMakesInstanceUnusable(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	b := NewBCG(nil)
	req.NoError(b.Initialize(newKC(32, 16)))
	b.Destroy()
	err := b.Generate(make([]byte, 16))
	req.Error(err)
}

func TestGenerateParallel_MatchesSerial(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	serial := NewBCG(nil)
	req.NoError(serial.Initialize(newKC(32, 16)))
	serialOut := make([]byte, 257)
	req.NoError(serial.Generate(serialOut))

	parallel := NewBCG(nil)
	req.NoError(parallel.Initialize(newKC(32, 16)))
	parallelOut := make([]byte, 257)
	req.NoError(parallel.GenerateParallel(parallelOut, 4))

	is.Equal(serialOut, parallelOut)
}

func TestGenerateAt_MatchesGenerate(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	whole := NewBCG(nil)
	req.NoError(whole.Initialize(newKC(32, 16)))
	wholeOut := make([]byte, 48)
	req.NoError(whole.Generate(wholeOut))

	at := NewBCG(nil)
	req.NoError(at.Initialize(newKC(32, 16)))
	atOut := make([]byte, 48)
	req.NoError(GenerateAt(at, atOut, 0, 16))
	req.NoError(GenerateAt(at, atOut, 16, 32))
	is.Equal(wholeOut, atOut)

	err := GenerateAt(at, atOut, 40, 16)
	var de *Error
	is.ErrorAs(err, &de)
	is.Equal(InvalidSize, de.Kind)
}

func TestNew_FactorySelectsVariant(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	for _, v := range allVariants {
		d, err := New(v)
		req.NoError(err)
		req.Equal(v, d.Enumeral())
	}
}
