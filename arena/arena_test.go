// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import "testing"

func TestFakeSbrkGrowShrink(t *testing.T) {
	f := NewFake(4096)

	end0, ok := f.Sbrk(0)
	if !ok || end0 != f.base {
		t.Fatalf("initial Sbrk(0) = %#x, %v; want %#x, true", end0, ok, f.base)
	}

	prev, ok := f.Sbrk(100)
	if !ok || prev != f.base {
		t.Fatalf("Sbrk(100) = %#x, %v; want %#x, true", prev, ok, f.base)
	}

	end, _ := f.Sbrk(0)
	if g, e := end, f.base+100; g != e {
		t.Fatalf("end after grow = %#x, want %#x", g, e)
	}

	if _, ok := f.Sbrk(-50); !ok {
		t.Fatal("shrink by 50 rejected")
	}

	if end, _ = f.Sbrk(0); end != f.base+50 {
		t.Fatalf("end after shrink = %#x, want %#x", end, f.base+50)
	}

	if _, ok := f.Sbrk(-1000); ok {
		t.Fatal("shrink below zero accepted")
	}

	if _, ok := f.Sbrk(5000); ok {
		t.Fatal("grow beyond reservation accepted")
	}
}

func TestFakeMmapMunmap(t *testing.T) {
	f := NewFake(0)

	base, ok := f.Mmap(128)
	if !ok || base == 0 {
		t.Fatalf("Mmap(128) = %#x, %v", base, ok)
	}

	if !f.Munmap(base, 128) {
		t.Fatal("Munmap of a live mapping failed")
	}

	if f.Munmap(base, 128) {
		t.Fatal("Munmap of an already-destroyed mapping succeeded")
	}
}

func TestRoundUpDown(t *testing.T) {
	cases := []struct{ n, to, up, down int64 }{
		{0, 16, 0, 0},
		{1, 16, 16, 0},
		{16, 16, 16, 16},
		{17, 16, 32, 16},
	}
	for _, c := range cases {
		if g := roundUp(c.n, c.to); g != c.up {
			t.Errorf("roundUp(%d, %d) = %d, want %d", c.n, c.to, g, c.up)
		}
		if g := roundDown(c.n, c.to); g != c.down {
			t.Errorf("roundDown(%d, %d) = %d, want %d", c.n, c.to, g, c.down)
		}
	}
}
