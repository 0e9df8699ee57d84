// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap implements a single-threaded, user-space dynamic memory
// allocator: a block-metadata chain, a segregated free-list histogram,
// the splitting/coalescing policy that keeps them both correct, a large
// allocation path via independent anonymous mappings, and the resize
// decision tree for Realloc.
//
// A *Heap is an owning context, not a compile-time global: construct
// one with New and drive it directly, or use the package-level
// convenience functions (Alloc, Free, ...), which lazily drive a
// default instance reachable through ResetDefault for tests.
package heap

import "github.com/cznic/umalloc/arena"

// Config configures a Heap.
type Config struct {
	// ReserveBytes is the size of the address-space reservation backing
	// the arena. It bounds how large the arena can ever grow.
	ReserveBytes int64

	// OS is the arena's operating-system collaborator. If nil, New
	// reserves ReserveBytes (or a 1GiB default) via arena.NewReal.
	OS arena.OS
}

// Option mutates a Config.
type Option func(*Config)

// WithReserve sets the address-space reservation backing the arena.
func WithReserve(bytes int64) Option {
	return func(c *Config) { c.ReserveBytes = bytes }
}

// WithOS injects the arena's operating-system collaborator, typically
// arena.NewFake in tests.
func WithOS(os arena.OS) Option {
	return func(c *Config) { c.OS = os }
}

const defaultReserve = 1 << 30 // 1GiB

// Heap is the allocator's process-local (or, for an embedder managing
// several, context-local) state: the block chain, the free histogram
// and the six running counters.
type Heap struct {
	os arena.OS

	head       *blockHeader
	wilderness *blockHeader
	bins       [NBins]*blockHeader

	freeBlocks      int64
	freeBytes       int64
	allocatedBlocks int64
	allocatedBytes  int64
}

// New returns a freshly constructed, empty Heap.
func New(opts ...Option) (*Heap, error) {
	cfg := Config{ReserveBytes: defaultReserve}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.OS == nil {
		if cfg.ReserveBytes <= 0 {
			return nil, &ErrInval{Msg: "heap.New: ReserveBytes out of limits", Arg: cfg.ReserveBytes}
		}

		real, err := arena.NewReal(cfg.ReserveBytes)
		if err != nil {
			return nil, err
		}
		cfg.OS = real
	}

	return &Heap{os: cfg.OS}, nil
}

func validSize(size int64) bool {
	return size > 0 && size <= MaxSize
}

// Alloc implements the §4.4 decision tree: validate, route to the
// mapping path above LargeThreshold, else search the histogram, else
// grow the wilderness or the arena.
func (h *Heap) Alloc(size int64) []byte {
	if !validSize(size) {
		return nil
	}

	if size >= LargeThreshold {
		base, ok := h.os.Mmap(int64(HeaderSize) + size)
		if !ok {
			return nil
		}

		b := headerAt(base)
		b.size = size
		h.allocatedBlocks++
		h.allocatedBytes += size
		return b.payloadBytes()
	}

	if b := h.binFind(size); b != nil {
		h.binRemove(b, 0)
		h.split(b, size)
		return b.payloadBytes()
	}

	switch {
	case h.wilderness == nil:
		b := h.growFirst(size)
		if b == nil {
			return nil
		}
		return b.payloadBytes()

	case h.wilderness.free:
		w := h.wilderness
		oldSize := w.size
		if oldSize >= size {
			// Only reachable if the free wilderness itself is at or
			// above LargeThreshold: a sub-threshold free wilderness
			// big enough for size would already have been found by
			// the histogram search above (see binInsert). Treat it
			// like an ordinary hit instead of enlarging by a negative
			// delta, which enlargeWilderness rejects outright.
			h.binRemove(w, oldSize)
			h.split(w, size)
			return w.payloadBytes()
		}
		if !h.enlargeWilderness(size - oldSize) {
			return nil
		}
		h.binRemove(w, oldSize)
		return w.payloadBytes()

	default:
		b := h.growAppend(size)
		if b == nil {
			return nil
		}
		return b.payloadBytes()
	}
}

// AllocZeroed implements §4.5: validate n*s as a single product (an
// overflowing product is treated as exceeding MaxSize), allocate, and
// zero the entire payload regardless of which path served it.
func (h *Heap) AllocZeroed(n, size int64) []byte {
	if n <= 0 || size <= 0 {
		return nil
	}

	total := n * size
	if total/n != size || !validSize(total) {
		return nil
	}

	b := h.Alloc(total)
	if b == nil {
		return nil
	}

	for i := range b {
		b[i] = 0
	}
	return b
}

// Free implements §4.6. A nil ptr is a no-op; freeing an already-free
// block is a no-op.
func (h *Heap) Free(ptr []byte) {
	if ptr == nil {
		return
	}

	b := headerOfSlice(ptr)
	if b.free {
		return
	}

	if b.size >= LargeThreshold {
		h.allocatedBlocks--
		h.allocatedBytes -= b.size
		h.os.Munmap(b.addr(), int64(HeaderSize)+b.size)
		return
	}

	b.free = true
	merged := h.maximalCoalesce(b)
	h.binInsert(merged)
}

// Realloc implements the §4.7 decision tree.
func (h *Heap) Realloc(ptr []byte, size int64) []byte {
	if !validSize(size) {
		return nil
	}

	if ptr == nil {
		return h.Alloc(size)
	}

	old := headerOfSlice(ptr)

	if old.size >= size {
		if old.size >= LargeThreshold {
			// The mapping is never partially unmapped: base/size must
			// match the original Mmap call (see OS.Munmap), and a
			// sub-range trim would break Fake's bookkeeping for no real
			// benefit. The excess stays mapped, uncounted as allocated,
			// until the block is freed or grown again.
			h.allocatedBytes -= old.size - size
			old.size = size
			return old.payloadBytes()
		}

		h.split(old, size)
		return old.payloadBytes()
	}

	if old.size >= LargeThreshold {
		base, ok := h.os.Mmap(int64(HeaderSize) + size)
		if !ok {
			return nil
		}

		nb := headerAt(base)
		nb.size = size
		copy(nb.payloadBytes(), old.payloadBytes())
		h.os.Munmap(old.addr(), int64(HeaderSize)+old.size)
		h.allocatedBytes += size - old.size
		return nb.payloadBytes()
	}

	if old == h.wilderness {
		merged, _ := h.coalesceLower(old)
		if merged.size >= size {
			moved := merged.addr() != old.addr()
			if moved {
				copy(merged.payloadBytes(), old.payloadBytes()[:old.size])
			}
			h.split(merged, size)
			return merged.payloadBytes()
		}

		if !h.enlargeWilderness(size - merged.size) {
			return nil
		}
		if merged.addr() != old.addr() {
			copy(merged.payloadBytes(), old.payloadBytes()[:old.size])
		}
		return merged.payloadBytes()
	}

	if p := old.prev; p != nil && p.free && p.size+int64(HeaderSize)+old.size >= size {
		merged, _ := h.coalesceLower(old)
		copy(merged.payloadBytes(), old.payloadBytes()[:old.size])
		h.split(merged, size)
		return merged.payloadBytes()
	}

	if n := old.next; n != nil && n.free && n.size+int64(HeaderSize)+old.size >= size {
		merged, _ := h.coalesceUpper(old)
		h.split(merged, size)
		return merged.payloadBytes()
	}

	if p, n := old.prev, old.next; p != nil && n != nil && p.free && n.free &&
		n.size+int64(HeaderSize)+p.size+int64(HeaderSize)+old.size >= size {
		merged, _ := h.coalesceLower(old)
		merged, _ = h.coalesceUpper(merged)
		copy(merged.payloadBytes(), old.payloadBytes()[:old.size])
		h.split(merged, size)
		return merged.payloadBytes()
	}

	newb := h.Alloc(size)
	if newb == nil {
		return nil
	}

	copy(newb, old.payloadBytes())
	h.Free(ptr)
	return newb
}
