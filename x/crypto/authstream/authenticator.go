// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package authstream implements the ChaCha-family authenticated stream
// cipher (spec.md §4.3): a ChaCha20 keystream with an integrated,
// rotating-key MAC, behaving as an AEAD with separate set-associated-data,
// transform, and tag-extract steps.
package authstream

// Authenticator selects the MAC construction AuthStream rotates on every
// transform finalize.
type Authenticator int

const (
	// AuthNone runs the cipher unauthenticated: no MAC key schedule, no tag.
	AuthNone Authenticator = iota
	KMAC256
	KMAC512
	KMAC1024
	HMACSHA256
	HMACSHA512
)

func (a Authenticator) String() string {
	switch a {
	case AuthNone:
		return "None"
	case KMAC256:
		return "KMAC256"
	case KMAC512:
		return "KMAC512"
	case KMAC1024:
		return "KMAC1024"
	case HMACSHA256:
		return "HMAC-SHA256"
	case HMACSHA512:
		return "HMAC-SHA512"
	default:
		return "Unknown"
	}
}

// TagSize returns the authenticator's output size in bytes, or 0 for
// AuthNone.
func (a Authenticator) TagSize() int {
	switch a {
	case KMAC256, HMACSHA256:
		return 32
	case KMAC512, HMACSHA512:
		return 64
	case KMAC1024:
		return 128
	default:
		return 0
	}
}
