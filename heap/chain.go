// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// The chain is the address-ordered doubly-linked list of every small/
// medium block living in the arena. This file holds the two ways a new
// chain block comes into existence by growing the arena (as opposed to
// by splitting an existing one, see ops.go).

// growFirst extends the arena by header+size and installs the result
// as the chain's sole block, both head and wilderness.
func (h *Heap) growFirst(size int64) *blockHeader {
	prevEnd, ok := h.os.Sbrk(int64(HeaderSize) + size)
	if !ok {
		return nil
	}

	b := headerAt(prevEnd)
	b.size = size
	h.head = b
	h.wilderness = b
	h.allocatedBlocks++
	h.allocatedBytes += size
	return b
}

// growAppend extends the arena by header+size and appends the result
// after the current (non-free) wilderness, which it replaces as the
// new wilderness.
func (h *Heap) growAppend(size int64) *blockHeader {
	prevEnd, ok := h.os.Sbrk(int64(HeaderSize) + size)
	if !ok {
		return nil
	}

	b := headerAt(prevEnd)
	b.size = size
	b.prev = h.wilderness
	h.wilderness.next = b
	h.wilderness = b
	h.allocatedBlocks++
	h.allocatedBytes += size
	return b
}
