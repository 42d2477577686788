// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// ErrClosed is returned by feed operations after Close. The
// subscription is detached; no further take or put can succeed.
var ErrClosed = errors.New("facet: feed closed")

// streamErrorHandler handles both stream and error effects.
// Stream ops wait on ErrWouldBlock via iox.Backoff. Error ops short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type streamErrorHandler[E, A any] struct {
	fd     *Feed
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Stream+Error handler.
// Dispatch order: Stream → Error.
func (h streamErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if sop, ok := op.(streamDispatcher); ok {
		v, err := dispatchWait(h.fd, sop)
		if err != nil {
			var zero kont.Either[E, A]
			return zero, false
		}
		return v, true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("facet: unhandled effect in StreamErrorHandler")
}

// ExecError runs a handler program with error handling on a pre-built feed.
// Returns Either[E, R]: Right on success, Left on Throw. A feed closed
// mid-program short-circuits evaluation with the zero Either.
// Blocks on iox.ErrWouldBlock via adaptive backoff, without spawning goroutines
// or creating channels.
func ExecError[E, R any](fd *Feed, program kont.Eff[R]) kont.Either[E, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](program, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := streamErrorHandler[E, R]{fd: fd, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}

// ExecErrorExpr runs an Expr handler program with error handling on a pre-built feed.
// Returns Either[E, R]: Right on success, Left on Throw. A feed closed
// mid-program short-circuits evaluation with the zero Either.
// Blocks on iox.ErrWouldBlock via adaptive backoff, without spawning goroutines
// or creating channels.
func ExecErrorExpr[E, R any](fd *Feed, program kont.Expr[R]) kont.Either[E, R] {
	wrapped := kont.ExprMap(program, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	var errCtx kont.ErrorContext[E]
	h := streamErrorHandler[E, R]{fd: fd, errCtx: &errCtx}
	return kont.HandleExpr(wrapped, h)
}

// SagaError subscribes a scoped feed on st and spawns the Cont-world
// handler program with error support, the [Saga] analog for programs
// that Throw. Call on the store's owning goroutine and schedule the
// task with [Drive].
func SagaError[E, R any](st *Store, f Facet, p Pattern, program kont.Eff[R]) *TaskError[E, R] {
	return SagaErrorExpr[E](st, f, p, Reify(program))
}

// SagaErrorExpr is the Expr-world form of [SagaError].
func SagaErrorExpr[E, R any](st *Store, f Facet, p Pattern, program kont.Expr[R]) *TaskError[E, R] {
	return SpawnError[E](ScopeFeed(f, p, st.Feed()), program)
}

// TaskError binds a stepped handler program with error support to its
// feed. Implements [Runner]; the result is an Either.
type TaskError[E, R any] struct {
	fd     *Feed
	susp   *kont.Suspension[kont.Either[E, R]]
	result kont.Either[E, R]
}

// SpawnError steps program to its first suspension and binds it to fd.
// Poll the task directly or schedule it with [Drive].
func SpawnError[E, R any](fd *Feed, program kont.Expr[R]) *TaskError[E, R] {
	result, susp := StepError[E, R](program)
	t := &TaskError[E, R]{fd: fd, susp: susp, result: result}
	if t.susp == nil {
		fd.Close()
	}
	return t
}

// Poll attempts one AdvanceError on the pending suspension. Progress
// is true when an effect dispatched or the task completed; the feed is
// closed on completion. iox.ErrWouldBlock reports no progress and
// leaves the task runnable; any other error (ErrClosed) is returned.
func (t *TaskError[E, R]) Poll() (bool, error) {
	if t.susp == nil {
		return false, nil
	}
	result, next, err := AdvanceError[E](t.fd, t.susp)
	if err != nil {
		if iox.IsWouldBlock(err) {
			return false, nil
		}
		return false, err
	}
	t.result, t.susp = result, next
	if t.susp == nil {
		t.fd.Close()
	}
	return true, nil
}

// Done reports whether the program ran to completion or was cancelled.
func (t *TaskError[E, R]) Done() bool {
	return t.susp == nil
}

// Result returns the program's Either result: Right on success, Left
// on Throw. Valid once Done; a cancelled task reports the zero Either.
func (t *TaskError[E, R]) Result() kont.Either[E, R] {
	return t.result
}

// Cancel detaches the task from the scheduler: the pending suspension
// is discarded, the feed closed, and no further delivery occurs.
func (t *TaskError[E, R]) Cancel() {
	if t.susp != nil {
		t.susp.Discard()
		t.susp = nil
	}
	t.fd.Close()
}

// StepError evaluates a handler program with error support until the
// first effect suspension. Returns (Either[E, R], nil) on completion
// or error, or (zero, suspension) if pending.
func StepError[E, R any](program kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	wrapped := kont.ExprMap(program, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	return kont.StepExpr(wrapped)
}

// AdvanceError dispatches the suspended operation on the feed.
// Stream ops are non-blocking (ErrWouldBlock). Error ops are eager:
// Throw discards the suspension and returns Left.
func AdvanceError[E, R any](fd *Feed, susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	// Stream ops: non-blocking dispatch
	if sop, ok := susp.Op().(streamDispatcher); ok {
		v, err := sop.DispatchStream(fd)
		if err != nil {
			var zero kont.Either[E, R]
			return zero, susp, err
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	// Error ops: eager dispatch
	if eop, ok := susp.Op().(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		var ctx kont.ErrorContext[E]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[E, R](ctx.Err), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	panic("facet: unhandled effect in AdvanceError")
}
