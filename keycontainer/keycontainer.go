// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package keycontainer holds the secret keying material shared by every
// generator in this module: a DRBG's seed, an AuthStream's key, and the
// optional nonce/info values that seed their customization strings.
//
// A KeyContainer owns its byte slices. Callers must not retain references to
// the slices passed to New; the container zeroizes them on Zeroize, and a
// generator zeroizes its own copy on Destroy.
package keycontainer

// SymmetricKeySize describes one legal (key, nonce, info) size triple a
// generator accepts. A generator's LegalKeySizes list enumerates every
// supported shape; Recommended flags the size combination offering the best
// security margin for that generator.
type SymmetricKeySize struct {
	KeySize     int
	NonceSize   int
	InfoSize    int
	Recommended bool
}

// Matches reports whether a key/nonce/info triple of the given lengths
// satisfies this size descriptor. The key length must equal KeySize. A
// zero-length nonce or info is always accepted (both inputs are optional);
// a non-empty one must equal NonceSize/InfoSize, unless that size is zero,
// in which case any length is accepted.
func (s SymmetricKeySize) Matches(keyLen, nonceLen, infoLen int) bool {
	if keyLen != s.KeySize {
		return false
	}
	if s.NonceSize != 0 && nonceLen != 0 && nonceLen != s.NonceSize {
		return false
	}
	if s.InfoSize != 0 && infoLen != 0 && infoLen != s.InfoSize {
		return false
	}
	return true
}

// LegalSizes is an ordered list of supported SymmetricKeySize shapes.
type LegalSizes []SymmetricKeySize

// Validate returns true if the given lengths match at least one descriptor.
func (l LegalSizes) Validate(keyLen, nonceLen, infoLen int) bool {
	for _, s := range l {
		if s.Matches(keyLen, nonceLen, infoLen) {
			return true
		}
	}
	return false
}

// Recommended returns the first descriptor flagged as recommended, or the
// last descriptor in the list (by convention, the strongest) if none is
// explicitly flagged.
func (l LegalSizes) Recommended() (SymmetricKeySize, bool) {
	for _, s := range l {
		if s.Recommended {
			return s, true
		}
	}
	if len(l) == 0 {
		return SymmetricKeySize{}, false
	}
	return l[len(l)-1], true
}

// KeyContainer bundles the secret key with its optional nonce and info
// (customization/distribution code) values. All three fields are treated as
// secret: callers must not log them, and must call Zeroize once the
// container is no longer needed.
type KeyContainer struct {
	Key   []byte
	Nonce []byte
	Info  []byte
}

// New builds a KeyContainer from the given key, nonce, and info. Nonce and
// info may be nil. The returned container takes ownership of the slices.
func New(key, nonce, info []byte) *KeyContainer {
	return &KeyContainer{Key: key, Nonce: nonce, Info: info}
}

// Zeroize overwrites every byte of Key, Nonce, and Info with zero and clears
// the slice headers. Safe to call more than once.
func (kc *KeyContainer) Zeroize() {
	if kc == nil {
		return
	}
	zero(kc.Key)
	zero(kc.Nonce)
	zero(kc.Info)
	kc.Key, kc.Nonce, kc.Info = nil, nil, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
