// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Tunables, carried over unchanged from the allocator this package
// reimplements.
const (
	NBins           = 128              // number of histogram bins
	BinRange        = 1024             // payload bytes spanned by one bin
	LargeThreshold  = NBins * BinRange // payloads at/above this use the mapping path
	MinSplitPayload = 128              // smallest payload worth carving off on split
	MaxSize         = 1e8              // largest single request accepted
)

// bin clamps to NBins-1 for any size at or above LargeThreshold purely
// as defensive index arithmetic; callers that insert or remove free
// blocks must not rely on that clamp to exclude oversized payloads
// from the histogram (see binInsert/binRemove, which check the
// threshold themselves before ever computing a bin index for a block
// the histogram must not hold).
func bin(size int64) int {
	i := int(size / BinRange)
	if i >= NBins {
		i = NBins - 1
	}
	return i
}
