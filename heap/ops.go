// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// The block operators: split, coalesce-lower, coalesce-upper, maximal
// coalesce and wilderness-enlarge. Each keeps the chain, the histogram
// and the six counters in lock-step. Apart from chain.go, which links
// in blocks newly grown from the arena, nothing outside this file
// touches an arena block's prev/next/size directly.

// split carves a prefix of size r off b's payload (currently s) and
// returns the free remainder block, or nil if the remainder would be
// smaller than MinSplitPayload+HeaderSize. b must not be free.
func (h *Heap) split(b *blockHeader, r int64) *blockHeader {
	s := b.size
	if s-r < MinSplitPayload+int64(HeaderSize) {
		return nil
	}

	frag := headerAt(b.addr() + HeaderSize + uintptr(r))
	frag.size = s - r - int64(HeaderSize)
	frag.prev, frag.next = b, b.next
	if b.next != nil {
		b.next.prev = frag
	}
	b.next = frag

	if h.wilderness == b {
		h.wilderness = frag
	}

	b.size = r
	h.allocatedBlocks++
	h.allocatedBytes -= int64(HeaderSize)
	h.binInsert(frag)
	return frag
}

// coalesceLower merges b into its predecessor if the predecessor is
// free, returning the merged block (the predecessor) and true, or
// (b, false) if there was nothing to merge. b must not be in the
// histogram at the time of the call.
func (h *Heap) coalesceLower(b *blockHeader) (*blockHeader, bool) {
	p := b.prev
	if p == nil || !p.free {
		return b, false
	}

	h.binRemove(p, 0)
	wasFree := b.free
	p.size += int64(HeaderSize) + b.size
	p.next = b.next
	if b.next != nil {
		b.next.prev = p
	}

	if p.next == nil {
		h.wilderness = p
	}

	p.free = wasFree
	h.allocatedBlocks--
	h.allocatedBytes += int64(HeaderSize)
	return p, true
}

// coalesceUpper merges b's successor into b if the successor is free,
// returning (b, true), or (b, false) if there was nothing to merge.
func (h *Heap) coalesceUpper(b *blockHeader) (*blockHeader, bool) {
	n := b.next
	if n == nil || !n.free {
		return b, false
	}

	h.binRemove(n, 0)
	b.size += int64(HeaderSize) + n.size
	b.next = n.next
	if n.next != nil {
		n.next.prev = b
	} else {
		h.wilderness = b
	}

	h.allocatedBlocks--
	h.allocatedBytes += int64(HeaderSize)
	return b, true
}

// maximalCoalesce merges b with a free predecessor, then a free
// successor, repeating until neither neighbour is free. b must not yet
// be in the histogram. It returns the final, possibly-merged block.
func (h *Heap) maximalCoalesce(b *blockHeader) *blockHeader {
	merged := false
	if m, ok := h.coalesceLower(b); ok {
		b, merged = m, true
	}
	if m, ok := h.coalesceUpper(b); ok {
		b, merged = m, true
	}
	if merged {
		return h.maximalCoalesce(b)
	}
	return b
}

// enlargeWilderness grows the wilderness block's payload by delta bytes
// via the OS arena primitive. No header is written; the wilderness
// simply claims the newly committed bytes. It returns false, with no
// state mutated, if the OS primitive refuses.
func (h *Heap) enlargeWilderness(delta int64) bool {
	if h.wilderness == nil || delta < 0 {
		return false
	}

	if _, ok := h.os.Sbrk(delta); !ok {
		return false
	}

	h.wilderness.size += delta
	h.allocatedBytes += delta
	return true
}
