// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// The six running counters, and a diagnostic walk that cross-checks them
// against the chain and the histogram. Grounded on lldb.Allocator's own
// AllocStats/Verify pair: cheap counters maintained in lock-step by every
// mutator in ops.go, plus an independent, deliberately-redundant checker
// nothing internal ever calls.

// NumFreeBlocks returns the number of free blocks in the chain. This
// includes a free block at or above LargeThreshold, which is counted
// here but filed into no histogram bin (see binInsert).
func (h *Heap) NumFreeBlocks() int64 { return h.freeBlocks }

// NumFreeBytes returns the total payload bytes held by free blocks.
func (h *Heap) NumFreeBytes() int64 { return h.freeBytes }

// NumAllocatedBlocks returns the number of blocks currently living in
// the chain, free or not, plus every live independent large mapping.
// A fresh alloc/free cycle leaves this at 1: the block still exists,
// merely reclassified as free, until something coalesces it away.
func (h *Heap) NumAllocatedBlocks() int64 { return h.allocatedBlocks }

// NumAllocatedBytes returns the total payload bytes spanned by every
// block NumAllocatedBlocks counts, free or not: splitting reserves a
// header out of it, coalescing reclaims one back.
func (h *Heap) NumAllocatedBytes() int64 { return h.allocatedBytes }

// NumMetaBytes returns the total bytes spent on headers, across every
// block NumAllocatedBlocks counts.
func (h *Heap) NumMetaBytes() int64 {
	return h.allocatedBlocks * int64(HeaderSize)
}

// SizeMeta returns the fixed per-block header size.
func (h *Heap) SizeMeta() int64 { return int64(HeaderSize) }

// Verify walks the chain once, cross-checking every invariant the
// operators in ops.go are supposed to maintain, and returns the first
// violation found as an *ErrCorrupt. It is a diagnostic only: nothing
// in Alloc, Free or Realloc calls it, and a clean bill of health here
// says nothing about independent large mappings, which carry no chain
// or histogram links to verify.
func (h *Heap) Verify() error {
	var (
		gotFreeBlocks, gotFreeBytes int64
		gotOversizedFree            int64 // free, but excluded from every bin; see binInsert
		seenBins                    [NBins]int64
	)

	var prev *blockHeader
	for b := h.head; b != nil; b = b.next {
		if b.prev != prev {
			return corrupt("chain broken at %#x: prev link does not match walk order", b.addr())
		}
		if prev != nil && prev.end() != b.addr() {
			return corrupt("chain broken at %#x: not adjacent to predecessor", b.addr())
		}
		if b.free && prev != nil && prev.free {
			return corrupt("adjacent free blocks at %#x and %#x: coalescing invariant violated", prev.addr(), b.addr())
		}
		if b.next == nil && h.wilderness != b {
			return corrupt("last chain block at %#x is not the recorded wilderness", b.addr())
		}

		if b.free {
			gotFreeBlocks++
			gotFreeBytes += b.size
			// A free block at or above LargeThreshold is deliberately
			// filed into no bin at all (see binInsert), so it is never
			// expected to show up in the bin walk below.
			if b.size < LargeThreshold {
				seenBins[bin(b.size)]++
			} else {
				gotOversizedFree++
			}
		}

		prev = b
	}

	if h.head == nil && h.wilderness != nil {
		return corrupt("wilderness set on an empty chain")
	}

	var binBlocks int64
	for i, head := range h.bins {
		var binPrevSize int64 = -1
		for cur := head; cur != nil; cur = cur.freeNext {
			if !cur.free {
				return corrupt("bin %d holds a block at %#x not marked free", i, cur.addr())
			}
			if cur.size >= LargeThreshold {
				return corrupt("bin %d holds an oversized block at %#x of size %d: the histogram must never hold a payload at or above LargeThreshold", i, cur.addr(), cur.size)
			}
			if bin(cur.size) != i {
				return corrupt("block at %#x of size %d sits in bin %d", cur.addr(), cur.size, i)
			}
			if cur.size < binPrevSize {
				return corrupt("bin %d is not size-ordered at %#x", i, cur.addr())
			}
			binPrevSize = cur.size
			binBlocks++
			seenBins[i]--
		}
	}

	for i, n := range seenBins {
		if n != 0 {
			return corrupt("bin %d disagrees between chain walk and bin walk", i)
		}
	}

	if binBlocks != gotFreeBlocks-gotOversizedFree {
		return corrupt("histogram holds %d blocks, chain walk found %d free below LargeThreshold", binBlocks, gotFreeBlocks-gotOversizedFree)
	}
	// allocatedBlocks/allocatedBytes also cover independent large
	// mappings, which carry no chain link, so they cannot be
	// cross-checked against the walk above; only the free side can be.
	if gotFreeBlocks != h.freeBlocks {
		return corrupt("freeBlocks counter is %d, chain walk found %d", h.freeBlocks, gotFreeBlocks)
	}
	if gotFreeBytes != h.freeBytes {
		return corrupt("freeBytes counter is %d, chain walk found %d", h.freeBytes, gotFreeBytes)
	}

	return nil
}
