// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package authstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QRCS-CORP/CEX-sub006/keycontainer"
)

func testKC(t *testing.T, keySize int) *keycontainer.KeyContainer {
	t.Helper()
	key := make([]byte, keySize)
	for i := range key {
		key[i] = byte(i*7 + 1)
	}
	nonce := make([]byte, 8)
	for i := range nonce {
		nonce[i] = byte(0xC0 + i)
	}
	return keycontainer.New(key, nonce, []byte("test-customization"))
}

// TestCSX256_RoundTrip_S4 is spec.md §8 scenario S4: encrypt-then-decrypt of
// 1 MiB + 37 bytes with a 13-byte AAD must recover the original plaintext.
func TestCSX256_RoundTrip_S4(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	plaintext := make([]byte, 1<<20+37)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}
	aad := []byte("0123456789abc")

	enc := New(CSX256, KMAC256)
	req.NoError(enc.Initialize(true, testKC(t, 32)))
	req.NoError(enc.SetAssociatedData(aad))

	ciphertext := make([]byte, len(plaintext)+enc.auth.TagSize())
	req.NoError(enc.Transform(plaintext, ciphertext))

	dec := New(CSX256, KMAC256)
	req.NoError(dec.Initialize(false, testKC(t, 32)))
	req.NoError(dec.SetAssociatedData(aad))

	recovered := make([]byte, len(plaintext))
	req.NoError(dec.Transform(ciphertext, recovered))
	is.Equal(plaintext, recovered)
}

func TestCSX256_TamperedCiphertextFailsAuthentication(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	plaintext := []byte("attack at dawn, repeated for good measure")
	aad := []byte("header")

	enc := New(CSX256, KMAC256)
	req.NoError(enc.Initialize(true, testKC(t, 32)))
	req.NoError(enc.SetAssociatedData(aad))
	ciphertext := make([]byte, len(plaintext)+enc.auth.TagSize())
	req.NoError(enc.Transform(plaintext, ciphertext))

	ciphertext[0] ^= 0x01

	dec := New(CSX256, KMAC256)
	req.NoError(dec.Initialize(false, testKC(t, 32)))
	req.NoError(dec.SetAssociatedData(aad))
	out := make([]byte, len(plaintext))
	for i := range out {
		out[i] = 0xFF
	}
	err := dec.Transform(ciphertext, out)
	is.Error(err)
	var de *Error
	is.ErrorAs(err, &de)
	is.Equal(AuthenticationFailure, de.Kind)
	for _, b := range out {
		is.Equal(byte(0xFF), b, "plaintext buffer must not be touched on a failed verification")
	}
}

func TestCSX256_WrongAADFailsAuthentication(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	plaintext := []byte("some secret payload")
	enc := New(CSX256, KMAC256)
	req.NoError(enc.Initialize(true, testKC(t, 32)))
	req.NoError(enc.SetAssociatedData([]byte("aad-a")))
	ciphertext := make([]byte, len(plaintext)+enc.auth.TagSize())
	req.NoError(enc.Transform(plaintext, ciphertext))

	dec := New(CSX256, KMAC256)
	req.NoError(dec.Initialize(false, testKC(t, 32)))
	req.NoError(dec.SetAssociatedData([]byte("aad-b")))
	out := make([]byte, len(plaintext))
	err := dec.Transform(ciphertext, out)
	is.Error(err)
}

func TestCSX512_RoundTrip(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	plaintext := make([]byte, 513)
	for i := range plaintext {
		plaintext[i] = byte(i * 3)
	}

	enc := New(CSX512, KMAC512)
	req.NoError(enc.Initialize(true, testKC(t, 64)))
	ciphertext := make([]byte, len(plaintext)+enc.auth.TagSize())
	req.NoError(enc.Transform(plaintext, ciphertext))

	dec := New(CSX512, KMAC512)
	req.NoError(dec.Initialize(false, testKC(t, 64)))
	recovered := make([]byte, len(plaintext))
	req.NoError(dec.Transform(ciphertext, recovered))
	is.Equal(plaintext, recovered)
}

func TestAuthStream_UnauthenticatedRoundTrip(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	plaintext := []byte("no integrity, just confidentiality")
	enc := New(CSX256, AuthNone)
	req.NoError(enc.Initialize(true, testKC(t, 32)))
	ciphertext := make([]byte, len(plaintext))
	req.NoError(enc.Transform(plaintext, ciphertext))
	is.NotEqual(plaintext, ciphertext)

	dec := New(CSX256, AuthNone)
	req.NoError(dec.Initialize(false, testKC(t, 32)))
	recovered := make([]byte, len(plaintext))
	req.NoError(dec.Transform(ciphertext, recovered))
	is.Equal(plaintext, recovered)
}

func TestAuthStream_MarshalUnmarshalRoundTrip(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	is := assert.New(t)

	enc := New(CSX256, KMAC256)
	req.NoError(enc.Initialize(true, testKC(t, 32)))
	req.NoError(enc.SetAssociatedData([]byte("aad")))
	plaintext := []byte("marshal me")
	ciphertext := make([]byte, len(plaintext)+enc.auth.TagSize())
	req.NoError(enc.Transform(plaintext, ciphertext))

	data := enc.Marshal()

	restored := New(CSX256, KMAC256)
	req.NoError(restored.Unmarshal(data))
	is.Equal(enc.nonce, restored.nonce)
	is.Equal(enc.macCounter, restored.macCounter)
	is.True(restored.initialized)
}
