// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package entropy

import (
	"crypto/sha512"
	"encoding/binary"
	"runtime"
	"time"
)

// EntropyCollector (ECP) folds ambient runtime state — goroutine counts,
// memory statistics, and monotonic time — through SHA-512 into an
// accumulator. Like Jitter, this is a software approximation standing in
// for a richer OS-level entropy collector (out of scope per spec.md §1).
type EntropyCollector struct {
	pool [sha512.Size]byte
}

// NewEntropyCollector constructs an EntropyCollector provider.
func NewEntropyCollector() *EntropyCollector {
	c := &EntropyCollector{}
	c.stir()
	return c
}

func (c *EntropyCollector) stir() {
	h := sha512.New()
	h.Write(c.pool[:])

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(runtime.NumGoroutine()))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], ms.Mallocs^ms.Frees)
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], ms.HeapAlloc)
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(ms.NumGC))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	h.Write(buf[:])

	copy(c.pool[:], h.Sum(nil))
}

func (c *EntropyCollector) fill8(dst []byte) error {
	c.stir()
	copy(dst, c.pool[:8])
	return nil
}

func (c *EntropyCollector) Fill(out []byte) error {
	return fillFromFunc(out, c.fill8)
}

func (c *EntropyCollector) NextUint16() (uint16, error) { return nextUint16From(c.fill8) }
func (c *EntropyCollector) NextUint32() (uint32, error) { return nextUint32From(c.fill8) }
func (c *EntropyCollector) NextUint64() (uint64, error) { return nextUint64From(c.fill8) }

func (c *EntropyCollector) Reset()           { c.pool = [sha512.Size]byte{} }
func (c *EntropyCollector) Name() string     { return "EntropyCollector" }
func (c *EntropyCollector) Enumeral() Kind   { return ECP }
func (c *EntropyCollector) IsAvailable() bool { return true }
