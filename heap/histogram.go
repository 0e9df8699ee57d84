// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// The histogram is NBins segregated free lists, bin i holding blocks
// whose payload falls in [i*BinRange, (i+1)*BinRange). Each bin's list
// is kept sorted by ascending payload size so first-fit within a bin is
// also best-fit within that bin.

// binInsert splices a free block into its bin, immediately before the
// first entry with strictly greater size, and updates the counters.
//
// Maximal coalesce can merge several below-threshold chain neighbours
// into one free block whose combined payload reaches LargeThreshold.
// Such a block is still a free chain block - the six counters still
// see it - but spec.md §3 is explicit that the histogram itself never
// holds a payload at or above LargeThreshold, so it is filed into no
// bin at all rather than relying on bin()'s index clamp, which would
// otherwise silently misfile it into bins[NBins-1]. See Heap.Alloc's
// wilderness-free case for how such a block is still put back to use.
func (h *Heap) binInsert(b *blockHeader) {
	b.free = true
	h.freeBlocks++
	h.freeBytes += b.size

	if b.size >= LargeThreshold {
		b.freePrev, b.freeNext = nil, nil
		return
	}

	i := bin(b.size)
	cur := h.bins[i]
	if cur == nil || cur.size > b.size {
		b.freePrev, b.freeNext = nil, cur
		if cur != nil {
			cur.freePrev = b
		}
		h.bins[i] = b
		return
	}

	for cur.freeNext != nil && cur.freeNext.size <= b.size {
		cur = cur.freeNext
	}

	b.freePrev, b.freeNext = cur, cur.freeNext
	if cur.freeNext != nil {
		cur.freeNext.freePrev = b
	}
	cur.freeNext = b
}

// binRemove unlinks b from its bin. sizeOverride, when non-zero, is
// used to compute the bin index instead of b.size - needed for the
// wilderness, whose size may already have been updated in place before
// the block is pulled out of the histogram.
//
// A free block at or above LargeThreshold was never filed into any
// bin in the first place (see binInsert), so there is nothing to
// unlink; only the counters change.
func (h *Heap) binRemove(b *blockHeader, sizeOverride int64) {
	sz := b.size
	if sizeOverride != 0 {
		sz = sizeOverride
	}

	h.freeBlocks--
	h.freeBytes -= sz
	b.free = false

	if sz >= LargeThreshold {
		return
	}

	i := bin(sz)
	if b.freePrev != nil {
		b.freePrev.freeNext = b.freeNext
	} else {
		h.bins[i] = b.freeNext
	}

	if b.freeNext != nil {
		b.freeNext.freePrev = b.freePrev
	}

	b.freePrev, b.freeNext = nil, nil
}

// binFind returns the first free block able to satisfy a payload of at
// least size, scanning bins from size's own bin upward, or nil.
func (h *Heap) binFind(size int64) *blockHeader {
	for i := bin(size); i < NBins; i++ {
		for cur := h.bins[i]; cur != nil; cur = cur.freeNext {
			if cur.size >= size {
				return cur
			}
		}
	}
	return nil
}
