// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package keycontainer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymmetricKeySize_Matches(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	s := SymmetricKeySize{KeySize: 32, NonceSize: 16, InfoSize: 16}
	is.True(s.Matches(32, 16, 16))
	is.True(s.Matches(32, 0, 0), "optional nonce/info may be omitted")
	is.False(s.Matches(16, 16, 16), "wrong key size must not match")
	is.False(s.Matches(32, 8, 16), "wrong nonce size must not match")
}

func TestLegalSizes_Validate(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	l := LegalSizes{
		{KeySize: 16, NonceSize: 16},
		{KeySize: 32, NonceSize: 16, Recommended: true},
	}
	is.True(l.Validate(16, 16, 0))
	is.True(l.Validate(32, 16, 0))
	is.False(l.Validate(24, 16, 0))

	rec, ok := l.Recommended()
	is.True(ok)
	is.Equal(32, rec.KeySize)
}

func TestKeyContainer_Zeroize(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	key := []byte{1, 2, 3, 4}
	nonce := []byte{5, 6}
	info := []byte{7, 8, 9}
	kc := New(key, nonce, info)

	kc.Zeroize()

	is.Nil(kc.Key)
	is.Nil(kc.Nonce)
	is.Nil(kc.Info)
	for _, b := range key {
		is.Zero(b)
	}
	for _, b := range nonce {
		is.Zero(b)
	}
	for _, b := range info {
		is.Zero(b)
	}

	// Safe to call twice.
	kc.Zeroize()
}

func TestKeyContainer_Nil(t *testing.T) {
	t.Parallel()
	var kc *KeyContainer
	kc.Zeroize() // must not panic
}
