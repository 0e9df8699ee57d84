// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command heap-crash is a long-running randomized stress driver for
// package heap. It keeps a shadow of every live allocation, hammers the
// allocator with a random mix of Alloc, AllocZeroed, Realloc and Free,
// checks every live payload against its shadow after each step, and
// runs the full Heap.Verify diagnostic at a configurable interval,
// logging and exiting non-zero on the first violation it finds.
//
// Unlike the reference crash harness this is adapted from, there is no
// persisted state to recover after a kill: the allocator's arena lives
// entirely in process memory and reverts to nothing the moment the
// process dies, so there is nothing to reopen and replay. "Crash" here
// means an invariant violation surfacing under sustained randomized
// load, not a kill-and-recover cycle.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/cznic/umalloc/heap"
)

var (
	oReserve     = flag.Int64("reserve", 1<<28, "arena reservation size in bytes")
	oMaxSize     = flag.Int64("maxsize", 1<<18, "maximum single allocation size")
	oDuration    = flag.Duration("duration", time.Minute, "how long to run")
	oVerifyEvery = flag.Int("verify-every", 500, "run Heap.Verify once every this many operations")
	oSeed        = flag.Int64("seed", 1, "PRNG seed")
)

type live struct {
	p    []byte
	size int64
	tag  byte
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lshortfile)

	h, err := heap.New(heap.WithReserve(*oReserve))
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*oSeed))
	deadline := time.Now().Add(*oDuration)

	var alive []live
	var ops, reallocs, frees int64

	for n := 0; time.Now().Before(deadline); n++ {
		switch {
		case len(alive) == 0 || rng.Intn(4) < 2:
			size := rng.Int63n(*oMaxSize) + 1
			var p []byte
			if rng.Intn(5) == 0 {
				p = h.AllocZeroed(size, 1)
			} else {
				p = h.Alloc(size)
			}
			if p == nil {
				continue
			}
			tag := byte(rng.Intn(256))
			for i := range p {
				p[i] = tag
			}
			alive = append(alive, live{p, size, tag})

		case rng.Intn(2) == 0:
			idx := rng.Intn(len(alive))
			l := alive[idx]
			newSize := rng.Int63n(*oMaxSize) + 1
			np := h.Realloc(l.p, newSize)
			if np == nil {
				continue
			}
			// Realloc only guarantees the original bytes survive; any
			// newly grown tail is unspecified, so re-tag the whole
			// payload before the next corruption check.
			for i := range np {
				np[i] = l.tag
			}
			alive[idx] = live{np, newSize, l.tag}
			reallocs++

		default:
			idx := rng.Intn(len(alive))
			h.Free(alive[idx].p)
			alive[idx] = alive[len(alive)-1]
			alive = alive[:len(alive)-1]
			frees++
		}

		for _, l := range alive {
			want := l.tag
			for _, b := range l.p {
				if b != want {
					log.Fatalf("op %d: live payload of size %d corrupted: got %#x, want %#x", n, l.size, b, want)
				}
			}
		}

		ops++
		if *oVerifyEvery > 0 && n%(*oVerifyEvery) == 0 {
			if err := h.Verify(); err != nil {
				log.Fatalf("op %d: %v", n, err)
			}
		}
	}

	if err := h.Verify(); err != nil {
		log.Fatal(err)
	}

	log.Printf("ops=%d reallocs=%d frees=%d live=%d allocatedBlocks=%d allocatedBytes=%d freeBlocks=%d freeBytes=%d",
		ops, reallocs, frees, len(alive), h.NumAllocatedBlocks(), h.NumAllocatedBytes(), h.NumFreeBlocks(), h.NumFreeBytes())
}
