// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command heap-lab replays a small, fixed allocation sequence against a
// heap.Heap and reports the allocator's counters afterwards. It is the
// Go counterpart of the reference implementation's own smoke-test
// main(): allocate one byte and free it, allocate four equal blocks,
// free the first and third, then grow the last one, which absorbs the
// freed block just below it and moves down into its place.
package main

import (
	"flag"
	"log"

	"github.com/cznic/umalloc/heap"
)

var defaultSize = flag.Int64("size", 2240, "payload size used for the four equal-size allocations")

func main() {
	flag.Parse()
	log.SetFlags(0)

	h, err := heap.New()
	if err != nil {
		log.Fatal(err)
	}

	m := h.Alloc(1)
	if m == nil {
		log.Fatal("Alloc(1) failed")
	}
	h.Free(m)

	var g [4][]byte
	for i := range g {
		g[i] = h.Alloc(*defaultSize)
		if g[i] == nil {
			log.Fatalf("Alloc(%d) failed at index %d", *defaultSize, i)
		}
	}

	h.Free(g[0])
	h.Free(g[2])

	if g[3] = h.Realloc(g[3], *defaultSize*3); g[3] == nil {
		log.Fatal("Realloc failed")
	}

	if err := h.Verify(); err != nil {
		log.Fatal(err)
	}

	log.Printf("allocated blocks: %d", h.NumAllocatedBlocks())
	log.Printf("allocated bytes:  %d", h.NumAllocatedBytes())
	log.Printf("free blocks:      %d", h.NumFreeBlocks())
	log.Printf("free bytes:       %d", h.NumFreeBytes())
	log.Printf("meta bytes:       %d", h.NumMetaBytes())
}
