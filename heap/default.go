// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "sync"

// defaultHeap backs the package-level convenience functions, lazily
// constructed on first use with the stock 1GiB arena.Real reservation.
var (
	defaultOnce sync.Once
	defaultHeap *Heap
	defaultErr  error
)

func getDefault() *Heap {
	defaultOnce.Do(func() {
		defaultHeap, defaultErr = New()
	})
	if defaultErr != nil {
		panic("heap: default Heap unavailable: " + defaultErr.Error())
	}
	return defaultHeap
}

// ResetDefault discards the package-level default Heap. If opts are
// given, the replacement is built from them immediately; otherwise a
// stock default is built lazily on next use. It exists for tests that want
// the convenience functions backed by an arena.Fake instead of a real
// mapping; production callers have no reason to call it.
func ResetDefault(opts ...Option) {
	defaultOnce = sync.Once{}
	defaultHeap, defaultErr = nil, nil
	if len(opts) != 0 {
		defaultOnce.Do(func() {
			defaultHeap, defaultErr = New(opts...)
		})
	}
}

// Alloc allocates size bytes from the default Heap. See Heap.Alloc.
func Alloc(size int64) []byte { return getDefault().Alloc(size) }

// AllocZeroed allocates n*size zeroed bytes from the default Heap. See
// Heap.AllocZeroed.
func AllocZeroed(n, size int64) []byte { return getDefault().AllocZeroed(n, size) }

// Free releases ptr back to the default Heap. See Heap.Free.
func Free(ptr []byte) { getDefault().Free(ptr) }

// Realloc resizes ptr using the default Heap. See Heap.Realloc.
func Realloc(ptr []byte, size int64) []byte { return getDefault().Realloc(ptr, size) }

// NumFreeBlocks reports the default Heap's free block count.
func NumFreeBlocks() int64 { return getDefault().NumFreeBlocks() }

// NumFreeBytes reports the default Heap's free byte count.
func NumFreeBytes() int64 { return getDefault().NumFreeBytes() }

// NumAllocatedBlocks reports the default Heap's allocated block count.
func NumAllocatedBlocks() int64 { return getDefault().NumAllocatedBlocks() }

// NumAllocatedBytes reports the default Heap's allocated byte count.
func NumAllocatedBytes() int64 { return getDefault().NumAllocatedBytes() }

// NumMetaBytes reports the default Heap's total header overhead.
func NumMetaBytes() int64 { return getDefault().NumMetaBytes() }

// SizeMeta reports the fixed per-block header size.
func SizeMeta() int64 { return getDefault().SizeMeta() }

// Verify runs Heap.Verify against the default Heap.
func Verify() error { return getDefault().Verify() }
