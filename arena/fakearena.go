// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import (
	"sync"
	"unsafe"

	"github.com/cznic/mathutil"
)

var _ OS = (*Fake)(nil) // Ensure Fake is an OS.

// Fake is a pure-Go OS: it backs the arena with an ordinary Go slice
// instead of a real mapping and large requests with further ordinary Go
// slices kept alive in a side table, so the heap engine's own tests
// never touch a real mapping or mprotect. It plays the same role for
// the heap package that the teacher's MemFiler plays for lldb.Allocator
// - a swappable, allocation-backed stand-in for the real backing store.
type Fake struct {
	mu        sync.Mutex
	mem       []byte // reservation, allocated once and never resized
	base      uintptr
	committed int64

	large map[uintptr][]byte // keeps large mappings reachable until Munmap
}

// NewFake returns a Fake reserving reserve bytes of ordinary Go memory.
func NewFake(reserve int64) *Fake {
	mem := make([]byte, reserve)
	base := uintptr(0)
	if len(mem) != 0 {
		base = uintptr(unsafe.Pointer(&mem[0]))
	}

	return &Fake{mem: mem, base: base, large: map[uintptr][]byte{}}
}

// Sbrk implements OS.
func (f *Fake) Sbrk(delta int64) (prevEnd uintptr, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prevEnd = f.base + uintptr(f.committed)
	next := f.committed + delta
	if next < 0 || next > int64(len(f.mem)) {
		return prevEnd, false
	}

	f.committed = next
	return prevEnd, true
}

// Mmap implements OS.
func (f *Fake) Mmap(size int64) (base uintptr, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	size = mathutil.MaxInt64(size, 0)
	buf := make([]byte, size)
	if size == 0 {
		return 0, true
	}

	addr := uintptr(unsafe.Pointer(&buf[0]))
	f.large[addr] = buf
	return addr, true
}

// Munmap implements OS.
func (f *Fake) Munmap(base uintptr, size int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.large[base]; !ok {
		return false
	}

	delete(f.large, base)
	return true
}
