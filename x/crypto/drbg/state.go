// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package drbg

import (
	"sync"

	"github.com/QRCS-CORP/CEX-sub006/x/crypto/entropy"
)

// lifecycle is the shared state machine every variant moves through:
// Unconfigured -> Initialized -> Generating <-> Reseeding -> Finalized.
type lifecycle int32

const (
	unconfigured lifecycle = iota
	initialized
	generating
	reseeding
	finalized
)

// defaultMaxReseed bounds the number of automatic reseeds an instance will
// perform before treating further threshold crossings as exhausted
// (spec.md §3 invariant 3, §6's fixed MAX_RESEED = 10000 contract floor).
// The teacher's ctrdrbg carried no such cap since it rekeys asynchronously
// in the background instead of inline; DRBG here reseeds synchronously and
// must bound it explicitly.
const defaultMaxReseed = 10000

// defaultMaxOutputMultiplier caps cumulative output as a multiple of the
// reseed threshold so long-lived generators cannot run forever on a single
// instance without ever being reseeded (spec.md §4.2 invariant 4).
const defaultMaxOutputMultiplier = 1 << 30

// maxRequestBlockCipher and maxRequestCShake are the per-request ceilings
// spec.md §6 fixes for the block-cipher and sponge-based variants
// (MAX_REQUEST = 100 MiB). maxRequestDigest is the corresponding 64 KiB
// floor for the HMAC/digest counter variants.
const (
	maxRequestBlockCipher = 100 << 20
	maxRequestCShake      = 100 << 20
	maxRequestDigest      = 64 << 10
)

// state is embedded by every concrete Drbg and owns everything the shared
// Generate/reseed loop needs: lifecycle, counters, and the entropy source
// used for automatic reseeding.
type state struct {
	mu sync.Mutex

	life lifecycle

	securityStrength int
	maxRequest       int
	maxOutput        uint64
	maxReseed        int

	reseedThreshold uint64
	reseedCounter   uint64
	reseedRequests  int
	totalOutput     uint64

	provider entropy.Provider
}

func newState(securityStrength, maxRequest int, reseedThreshold uint64, provider entropy.Provider) *state {
	return &state{
		life:             unconfigured,
		securityStrength: securityStrength,
		maxRequest:       maxRequest,
		maxOutput:        reseedThreshold * defaultMaxOutputMultiplier,
		maxReseed:        defaultMaxReseed,
		reseedThreshold:  reseedThreshold,
		provider:         provider,
	}
}

func (s *state) checkInitialize(op string) error {
	if s.life != unconfigured {
		return newError(IllegalOperation, op, nil)
	}
	return nil
}

func (s *state) checkGenerate(op string, length int) error {
	switch s.life {
	case unconfigured:
		return newError(NotInitialized, op, nil)
	case finalized:
		return newError(IllegalOperation, op, nil)
	}
	if length < 0 {
		return newError(InvalidSize, op, nil)
	}
	if length > s.maxRequest {
		s.life = finalized
		return newError(MaxRequest, op, nil)
	}
	if s.totalOutput+uint64(length) > s.maxOutput {
		s.life = finalized
		return newError(MaxOutput, op, nil)
	}
	if s.reseedCounter > s.reseedThreshold {
		return newError(IllegalOperation, op, nil)
	}
	return nil
}

func (s *state) checkUpdate(op string) error {
	switch s.life {
	case unconfigured:
		return newError(NotInitialized, op, nil)
	case finalized:
		return newError(IllegalOperation, op, nil)
	}
	return nil
}

func (s *state) setReseedThreshold(op string, n uint64) error {
	if s.life != unconfigured && s.life != initialized {
		return newError(IllegalOperation, op, nil)
	}
	if n == 0 {
		return newError(InvalidParam, op, nil)
	}
	s.reseedThreshold = n
	s.maxOutput = n * defaultMaxOutputMultiplier
	return nil
}

// reseedLoop drives len(out) bytes through genChunk in pieces bounded by the
// reseed threshold, invoking reseed() synchronously every time the threshold
// is crossed so that the effect is visible within the same Generate call
// (spec.md §8 scenario S6: a 256-byte request against a 64-byte threshold
// must perform exactly four reseeds).
func (s *state) reseedLoop(out []byte, genChunk func(dst []byte) error, reseed func() error) error {
	s.life = generating
	remaining := len(out)
	off := 0
	for remaining > 0 {
		avail := s.reseedThreshold - s.reseedCounter
		if avail == 0 {
			avail = s.reseedThreshold
		}
		chunk := remaining
		if uint64(chunk) > avail {
			chunk = int(avail)
		}
		if err := genChunk(out[off : off+chunk]); err != nil {
			s.life = finalized
			return err
		}
		off += chunk
		remaining -= chunk
		s.totalOutput += uint64(chunk)
		s.reseedCounter += uint64(chunk)

		if s.reseedCounter >= s.reseedThreshold {
			if s.provider != nil {
				s.life = reseeding
				if err := reseed(); err != nil {
					s.life = finalized
					return newError(EntropyFailure, "Generate", err)
				}
				s.reseedRequests++
				if s.reseedRequests > s.maxReseed {
					s.life = finalized
					return newError(MaxReseed, "Generate", nil)
				}
			}
			s.reseedCounter = 0
			s.life = generating
		}
	}
	if s.life == generating {
		s.life = initialized
	}
	return nil
}

func (s *state) destroy() {
	s.life = finalized
}
