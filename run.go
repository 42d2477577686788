// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Runner is the erased view of a stepped task, the unit the [Drive]
// scheduler polls.
type Runner interface {
	// Poll attempts one Advance. Progress is false on
	// iox.ErrWouldBlock, leaving the task runnable; other errors are
	// returned for the scheduler to decide.
	Poll() (bool, error)
	// Done reports completion.
	Done() bool
	// Cancel detaches the task: the pending suspension is discarded
	// and its feed closed.
	Cancel()
}

// Task binds a stepped handler program to its feed, exposing the
// typed result once the program completes.
type Task[R any] struct {
	fd     *Feed
	susp   *kont.Suspension[R]
	result R
}

// Spawn steps program to its first suspension and binds it to fd.
// Poll the task directly or schedule it with [Drive].
func Spawn[R any](fd *Feed, program kont.Expr[R]) *Task[R] {
	result, susp := Step[R](program)
	t := &Task[R]{fd: fd, susp: susp, result: result}
	if t.susp == nil {
		fd.Close()
	}
	return t
}

// Saga subscribes a scoped feed on st and spawns the Cont-world
// handler program on it: the virtual channel is built for facet
// identity f and pattern p, and the program runs against it as a
// stepped task. Call on the store's owning goroutine and schedule the
// task with [Drive].
func Saga[R any](st *Store, f Facet, p Pattern, program kont.Eff[R]) *Task[R] {
	return SagaExpr(st, f, p, Reify(program))
}

// SagaExpr is the Expr-world form of [Saga].
func SagaExpr[R any](st *Store, f Facet, p Pattern, program kont.Expr[R]) *Task[R] {
	return Spawn(ScopeFeed(f, p, st.Feed()), program)
}

// Poll attempts one Advance on the pending suspension. Progress is
// true when an effect dispatched or the task completed; the feed is
// closed on completion. iox.ErrWouldBlock reports no progress and
// leaves the task runnable; any other error (ErrClosed) is returned.
func (t *Task[R]) Poll() (bool, error) {
	if t.susp == nil {
		return false, nil
	}
	result, next, err := Advance(t.fd, t.susp)
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
func (t *Task[R]) Done() bool {
	return t.susp == nil
}

// Result returns the program's result. Valid once Done; a cancelled
// task reports the zero result.
func (t *Task[R]) Result() R {
	return t.result
}

// Cancel detaches the task from the scheduler: the pending suspension
// is discarded, the feed closed, and no further delivery occurs.
func (t *Task[R]) Cancel() {
	if t.susp != nil {
		t.susp.Discard()
		t.susp = nil
	}
	t.fd.Close()
}

// Drive interleaves task polling with store pumping on the calling
// goroutine until every task completes or the system is quiescent: no
// task can advance and no pending or looped-back action remains.
// Tasks whose feeds close mid-program are cancelled. Returns the
// number of tasks that ran to completion during this call. Does not
// spawn goroutines or create channels.
//
// Quiescence is the normal exit for long-running handler loops: the
// remaining tasks stay parked on their takes and a later Drive resumes
// them after more dispatches.
func Drive(st *Store, tasks ...Runner) int {
	completed := 0
	live := make([]Runner, 0, len(tasks))
	for _, t := range tasks {
		if t.Done() {
			continue
		}
		live = append(live, t)
	}
	for len(live) > 0 {
		progress := false
		for i := 0; i < len(live); {
			t := live[i]
			advanced, err := t.Poll()
			if err != nil {
				t.Cancel()
				live = append(live[:i], live[i+1:]...)
				progress = true
				continue
			}
			if advanced {
				progress = true
			}
			if t.Done() {
				completed++
				live = append(live[:i], live[i+1:]...)
				continue
			}
			i++
		}
		if st.Pump() {
			progress = true
		}
		if !progress {
			break
		}
	}
	return completed
}
