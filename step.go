// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a handler program until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](program kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(program)
}

// Advance dispatches the suspended stream operation on the feed.
// DispatchStream is non-blocking: it returns iox.ErrWouldBlock when
// the bounded ring cannot make progress and ErrClosed when the feed
// has been detached (the I/O boundary).
//
// On success (nil error), the suspension is consumed and the program
// advances to the next effect or completion.
// On error, the suspension is unconsumed: retry once the store makes
// progress, or Discard it to cancel the task without further delivery.
func Advance[R any](fd *Feed, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(streamDispatcher)
	if !ok {
		panic("facet: unhandled effect in Advance")
	}
	v, err := sop.DispatchStream(fd)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
