// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const pageSize = 1 << 12 // 4K; large enough for every platform this targets.

var _ OS = (*Real)(nil) // Ensure Real is an OS.

// Real is an OS backed by real anonymous mappings. It reserves address
// space once, up front, as PROT_NONE, and Sbrk only ever commits
// (mprotects to PROT_READ|PROT_WRITE) or decommits (mprotects back to
// PROT_NONE) a prefix of that reservation. The reservation itself is
// never grown, moved or shrunk, which is what lets the engine keep bare
// pointers into it valid for the lifetime of the block they belong to.
type Real struct {
	mu        sync.Mutex
	base      uintptr
	reserved  int64
	committed int64
}

// NewReal reserves reserve bytes (rounded up to a page) of address
// space and returns an OS driving it.
func NewReal(reserve int64) (*Real, error) {
	reserve = roundUp(reserve, pageSize)
	b, err := unix.Mmap(-1, 0, int(reserve), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, err
	}

	return &Real{base: uintptr(unsafe.Pointer(&b[0])), reserved: reserve}, nil
}

// Close releases the entire reservation. It must be called only after
// every block and mapping carved out of it has been abandoned.
func (r *Real) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mem := unsafe.Slice((*byte)(unsafe.Pointer(r.base)), r.reserved)
	return unix.Munmap(mem)
}

// Sbrk implements OS.
func (r *Real) Sbrk(delta int64) (prevEnd uintptr, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prevEnd = r.base + uintptr(r.committed)
	switch {
	case delta == 0:
		return prevEnd, true
	case delta > 0:
		next := r.committed + delta
		if next > r.reserved {
			return prevEnd, false
		}

		from := roundUp(r.committed, pageSize)
		to := roundUp(next, pageSize)
		if to > from {
			mem := unsafe.Slice((*byte)(unsafe.Pointer(r.base+uintptr(from))), to-from)
			if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_WRITE); err != nil {
				return prevEnd, false
			}
		}

		r.committed = next
		return prevEnd, true
	default:
		next := r.committed + delta
		if next < 0 {
			return prevEnd, false
		}

		from := roundUp(next, pageSize)
		to := roundUp(r.committed, pageSize)
		if to > from {
			mem := unsafe.Slice((*byte)(unsafe.Pointer(r.base+uintptr(from))), to-from)
			unix.Mprotect(mem, unix.PROT_NONE) // best-effort; shrink still commits logically
		}

		r.committed = next
		return prevEnd, true
	}
}

// Mmap implements OS.
func (r *Real) Mmap(size int64) (base uintptr, ok bool) {
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, false
	}

	return uintptr(unsafe.Pointer(&b[0])), true
}

// Munmap implements OS.
func (r *Real) Munmap(base uintptr, size int64) bool {
	mem := unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
	return unix.Munmap(mem) == nil
}
