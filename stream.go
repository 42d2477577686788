// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
)

// feedCapacity is the bounded capacity for feed transport rings.
// 64 absorbs dispatch bursts between consumer polls while keeping the
// per-subscriber backlog small; power of two for the ring index.
const feedCapacity = 64

// Feed is one subscription endpoint on a store's action stream. The
// store fans every dispatched action into the feed's bounded take
// ring; the consumer side reads with TryTake and loops actions back
// into the store with TryPut. Each ring end belongs to exactly one
// goroutine: the store owner produces takes and drains puts, the
// feed's consumer does the reverse.
//
// A feed built by [ScopeFeed] is the facet-scoped view: takes are
// filtered by facet identity first and secondary pattern second, and
// puts pass through the tag codec before re-entering the store.
type Feed struct {
	takeQ  *lfq.SPSC[Action]
	putQ   *lfq.SPSC[Action]
	closed *atomix.Uint32
	store  *Store
	facet  Facet
	accept Pattern // nil on unscoped feeds
	serial Serial
}

// feedCore holds the feed, rings, and close flag in a single
// allocation. SPSC queues are embedded as values; only the ring
// buffers are separate heap objects.
type feedCore struct {
	fd     Feed
	closed atomix.Uint32
	take   lfq.SPSC[Action]
	put    lfq.SPSC[Action]
}

// newFeed allocates a subscription endpoint bound to s.
func newFeed(s *Store) *Feed {
	core := &feedCore{}
	core.take.Init(feedCapacity)
	core.put.Init(feedCapacity)
	core.fd = Feed{
		takeQ:  &core.take,
		putQ:   &core.put,
		closed: &core.closed,
		store:  s,
		serial: nextSerial(),
	}
	return &core.fd
}

// ScopeFeed builds the virtual endpoint for facet identity f over an
// existing subscription: a feed with the same transport whose reads
// admit only actions tagged with f and matching p, and whose writes
// tag outgoing actions with f. A nil pattern admits every action of
// the facet.
//
// The scoped feed assumes the consumer side of the underlying
// subscription; scoping an already-scoped feed is not supported.
func ScopeFeed(f Facet, p Pattern, fd *Feed) *Feed {
	if p == nil {
		p = Anything
	}
	return &Feed{
		takeQ:  fd.takeQ,
		putQ:   fd.putQ,
		closed: fd.closed,
		store:  fd.store,
		facet:  f,
		accept: p,
		serial: fd.serial,
	}
}

// TryTake returns the next action visible through this feed.
// Non-blocking: returns iox.ErrWouldBlock while no visible action is
// buffered, ErrClosed after Close. On scoped feeds the facet identity
// is checked first and the secondary pattern second; actions failing
// either stage are discarded invisibly, preserving the relative order
// of the visible ones.
func (fd *Feed) TryTake() (Action, error) {
	for {
		if fd.closed.Load() != 0 {
			return Action{}, ErrClosed
		}
		a, err := fd.takeQ.Dequeue()
		if err != nil {
			return Action{}, err
		}
		if fd.accept == nil {
			return a, nil
		}
		if got, ok := FacetOf(a); !ok || got != fd.facet {
			continue
		}
		if !fd.accept(a) {
			continue
		}
		return a, nil
	}
}

// TryPut loops action a back into the hosting store through this feed.
// On scoped feeds a passes through the tag codec first, so handler
// writes re-enter the store already carrying the facet identity.
// Non-blocking: returns iox.ErrWouldBlock while the bounded ring is
// full, ErrClosed after Close. The store drains looped-back actions on
// its next dispatch or pump.
func (fd *Feed) TryPut(a Action) error {
	if fd.closed.Load() != 0 {
		return ErrClosed
	}
	if fd.accept != nil {
		a = Tag(a, fd.facet)
	}
	return fd.putQ.Enqueue(&a)
}

// Close detaches the feed from the store. Buffered actions are
// dropped, subsequent takes and puts report ErrClosed, and the store
// unlinks the subscription on its next delivery. Close is safe from
// any goroutine.
func (fd *Feed) Close() {
	fd.closed.Add(1)
}

// Serial returns the serial number assigned to this feed's
// subscription.
func (fd *Feed) Serial() Serial {
	return fd.serial
}

// streamDispatcher is the structural interface for stream operations.
// DispatchStream is non-blocking: it returns iox.ErrWouldBlock at the
// I/O boundary when the bounded queue cannot make progress.
type streamDispatcher interface {
	DispatchStream(fd *Feed) (kont.Resumed, error)
}

// streamHandler implements kont.Handler for stream effects.
// Waits on iox.ErrWouldBlock, converting non-blocking dispatch into
// blocking evaluation for Exec/ExecExpr. A feed closed mid-program
// short-circuits evaluation with the zero result.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type streamHandler[R any] struct {
	fd *Feed
}

// Dispatch implements kont.Handler via structural interface assertion.
// Waits past the iox.ErrWouldBlock boundary with adaptive backoff.
func (h streamHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(streamDispatcher)
	if !ok {
		panic("facet: unhandled effect in streamHandler")
	}
	v, err := dispatchWait(h.fd, sop)
	if err != nil {
		var zero R
		return zero, false
	}
	return v, true
}

// dispatchWait retries DispatchStream until it succeeds, backing off
// on iox.ErrWouldBlock with iox.Backoff (I/O readiness waiting).
// ErrClosed is terminal and is returned to the caller.
func dispatchWait(fd *Feed, sop streamDispatcher) (kont.Resumed, error) {
	var bo iox.Backoff
	for {
		v, err := sop.DispatchStream(fd)
		if err == nil {
			return v, nil
		}
		if !iox.IsWouldBlock(err) {
			return nil, err
		}
		bo.Wait()
	}
}
