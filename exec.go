// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world handler program against a subscribed feed.
// Blocks on iox.ErrWouldBlock via adaptive backoff (iox.Backoff),
// without spawning goroutines or creating channels. A feed closed
// mid-program short-circuits evaluation with the zero result.
//
// Exec is the goroutine topology: subscribe and scope the feed on the
// store's owning goroutine, hand it to the evaluating goroutine, and
// keep the owner pumping.
func Exec[R any](fd *Feed, program kont.Eff[R]) R {
	h := streamHandler[R]{fd: fd}
	return kont.Handle(program, h)
}

// ExecExpr runs an Expr-world handler program against a subscribed
// feed. Blocks on iox.ErrWouldBlock via adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels. A
// feed closed mid-program short-circuits evaluation with the zero
// result.
func ExecExpr[R any](fd *Feed, program kont.Expr[R]) R {
	h := streamHandler[R]{fd: fd}
	return kont.HandleExpr(program, h)
}
