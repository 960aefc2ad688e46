// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"crypto/sha512"
	"runtime"
	"time"
)

// Jitter sources entropy from CPU timing jitter: the variance in wall-clock
// duration of a short, data-dependent busy loop, folded through SHA-512.
// This is a software approximation of the CJP provider spec.md §6
// enumerates; it is not a hardware jitter entropy source (out of scope per
// spec.md §1, "entropy providers ... are external collaborators").
type Jitter struct {
	pool [sha512.Size]byte
}

// NewJitter constructs a Jitter provider.
func NewJitter() *Jitter {
	j := &Jitter{}
	j.stir()
	return j
}

// stir folds one round of timing-jitter samples into the accumulator pool.
func (j *Jitter) stir() {
	h := sha512.New()
	h.Write(j.pool[:])

	var acc uint64
	for i := 0; i < 32; i++ {
		start := time.Now()
		// A short, branchy, data-dependent loop whose completion time
		// jitters with scheduler noise, cache state, and OS timer
		// resolution; none of it is an adversarially-controlled input.
		for k := 0; k < 97; k++ {
			acc = acc*2654435761 + uint64(k) + acc>>7
		}
		delta := time.Since(start).Nanoseconds()
		var buf [8]byte
		for b := 0; b < 8; b++ {
			buf[b] = byte(delta >> (8 * b))
		}
		h.Write(buf[:])
		runtime.Gosched()
	}
	copy(j.pool[:], h.Sum(nil))
}

func (j *Jitter) fill8(dst []byte) error {
	j.stir()
	copy(dst, j.pool[:8])
	return nil
}

func (j *Jitter) Fill(out []byte) error {
	return fillFromFunc(out, j.fill8)
}

func (j *Jitter) NextUint16() (uint16, error) { return nextUint16From(j.fill8) }
func (j *Jitter) NextUint32() (uint32, error) { return nextUint32From(j.fill8) }
func (j *Jitter) NextUint64() (uint64, error) { return nextUint64From(j.fill8) }

func (j *Jitter) Reset()           { j.pool = [sha512.Size]byte{} }
func (j *Jitter) Name() string     { return "Jitter" }
func (j *Jitter) Enumeral() Kind   { return CJP }
func (j *Jitter) IsAvailable() bool { return true }
