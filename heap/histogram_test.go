// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestBinBoundaries(t *testing.T) {
	cases := []struct {
		size int64
		want int
	}{
		{0, 0},
		{1, 0},
		{BinRange - 1, 0},
		{BinRange, 1},
		{BinRange + 1, 1},
		{int64(NBins-1) * BinRange, NBins - 1},
		{LargeThreshold - 1, NBins - 1},
		{LargeThreshold, NBins - 1}, // clamped: never actually reached via bin(), Alloc routes this size to Mmap
		{LargeThreshold * 10, NBins - 1},
	}

	for _, c := range cases {
		if got := bin(c.size); got != c.want {
			t.Errorf("bin(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestHistogramInsertOrdersBySize(t *testing.T) {
	h := &Heap{}
	sizes := []int64{300, 100, 500, 200, 400}
	for _, s := range sizes {
		b := &blockHeader{size: s}
		h.binInsert(b)
	}

	i := bin(100)
	var got []int64
	for cur := h.bins[i]; cur != nil; cur = cur.freeNext {
		got = append(got, cur.size)
	}

	want := []int64{100, 200, 300, 400, 500}
	if len(got) != len(want) {
		t.Fatalf("bin holds %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("bin order = %v, want %v", got, want)
		}
	}

	if h.freeBlocks != int64(len(sizes)) {
		t.Fatalf("freeBlocks = %d, want %d", h.freeBlocks, len(sizes))
	}
}

func TestHistogramRemoveUpdatesHead(t *testing.T) {
	h := &Heap{}
	a := &blockHeader{size: 64}
	b := &blockHeader{size: 64}
	h.binInsert(a)
	h.binInsert(b)

	h.binRemove(h.bins[bin(64)], 0)
	if h.freeBlocks != 1 {
		t.Fatalf("freeBlocks = %d, want 1", h.freeBlocks)
	}
	if h.bins[bin(64)] == nil {
		t.Fatal("bin head should still hold the second block")
	}
}

func TestHistogramFindFirstFit(t *testing.T) {
	h := &Heap{}
	for _, s := range []int64{50, 2000, 3000} {
		h.binInsert(&blockHeader{size: s})
	}

	got := h.binFind(1500)
	if got == nil || got.size != 2000 {
		t.Fatalf("binFind(1500) = %v, want size 2000", got)
	}

	if h.binFind(100000) != nil {
		t.Fatal("binFind should return nil when no bin can satisfy the request")
	}
}
