// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "unsafe"

// blockHeader is written in-band at the start of every block the
// engine manages, both inside the arena and inside an independent
// large mapping. The payload begins immediately after it.
type blockHeader struct {
	size int64 // payload size in bytes, excluding this header
	free bool

	prev, next         *blockHeader // address-ordered chain links
	freePrev, freeNext *blockHeader // histogram bin links; zero unless free
}

// HeaderSize is the number of bytes every block reserves for its
// header, ahead of the payload. It is the module's size_meta().
const HeaderSize = unsafe.Sizeof(blockHeader{})

// headerAt views the header believed to start at addr.
func headerAt(addr uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(addr))
}

// addr returns h's own address.
func (h *blockHeader) addr() uintptr {
	return uintptr(unsafe.Pointer(h))
}

// payload returns the pointer callers see for h.
func (h *blockHeader) payload() unsafe.Pointer {
	return unsafe.Pointer(h.addr() + HeaderSize)
}

// headerOf recovers the header owning a payload pointer previously
// handed to a caller.
func headerOf(p unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(uintptr(p) - HeaderSize))
}

// headerOfSlice recovers the header behind a payload slice returned by
// Alloc, AllocZeroed or Realloc. The slice is always non-empty: the
// surface never hands out a payload of size zero.
func headerOfSlice(p []byte) *blockHeader {
	return headerOf(unsafe.Pointer(&p[0]))
}

// payloadBytes views h's payload as a byte slice, for zeroing and
// copying. The memory is not Go-heap-owned; the slice header itself is
// safe to construct and discard because neither the arena nor a large
// mapping is ever moved or resized out from under a live block.
func (h *blockHeader) payloadBytes() []byte {
	return unsafe.Slice((*byte)(h.payload()), int(h.size))
}

// end returns the address one past h's block, i.e. where its successor
// would start if one were appended immediately.
func (h *blockHeader) end() uintptr {
	return h.addr() + HeaderSize + uintptr(h.size)
}
