// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// ErrInval reports an out-of-limits argument to a constructor or
// configuration option, in the spirit of lldb's ErrINVAL: a short
// message plus the offending value, self-describing without needing a
// stack trace.
type ErrInval struct {
	Msg string
	Arg interface{}
}

func (e *ErrInval) Error() string { return fmt.Sprintf("%s: %v", e.Msg, e.Arg) }

// ErrCorrupt reports a structural invariant violation found by
// Heap.Verify, in the spirit of lldb's ErrILSEQ: Verify never panics or
// guesses at recovery, it just names the first inconsistency it finds.
type ErrCorrupt struct {
	Msg string
}

func (e *ErrCorrupt) Error() string { return "heap: " + e.Msg }

func corrupt(format string, args ...interface{}) error {
	return &ErrCorrupt{Msg: fmt.Sprintf(format, args...)}
}
