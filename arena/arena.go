// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arena provides the allocator's sole operating-system
// collaborators: a single contiguous address range that can be grown or
// shrunk at its high-water mark (standing in for sbrk(2), which Go does
// not expose portably) and independent anonymous mappings for
// oversized requests.
package arena

// OS abstracts the two primitives the heap engine needs from its host.
// Both are treated as synchronous and fallible; a failed call must
// leave the OS's own state unchanged.
type OS interface {
	// Sbrk grows (delta > 0), shrinks (delta < 0) or queries
	// (delta == 0) the committed prefix of the arena. It returns the
	// address the arena ended at before the change. ok is false if the
	// kernel refused the request (out of reservation, permission
	// denied, ...); on failure prevEnd is still the current end and no
	// state changes.
	Sbrk(delta int64) (prevEnd uintptr, ok bool)

	// Mmap creates an independent anonymous read/write private mapping
	// of size bytes and returns its base address.
	Mmap(size int64) (base uintptr, ok bool)

	// Munmap destroys a mapping previously returned by Mmap. base and
	// size must match the values returned by the corresponding Mmap.
	Munmap(base uintptr, size int64) bool
}

func roundUp(n, to int64) int64 {
	if r := n % to; r != 0 {
		return n + (to - r)
	}
	return n
}

func roundDown(n, to int64) int64 {
	return n - n%to
}
