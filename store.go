// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/iox"
)

// initType is folded through the root reducer at construction so every
// partition can establish its default state. Initialization actions
// carry no facet tag.
const initType = "facet/init"

// Store is the in-memory hosting store: a root reducer folded over a
// totally ordered action stream, fanned out to subscriber feeds over
// bounded lock-free rings.
//
// A Store is confined to its owning goroutine: Dispatch, Pump, State,
// and Feed must all be called from it. Other goroutines interact
// through feeds only, which is what keeps every ring end
// single-producer single-consumer.
type Store struct {
	state    any
	reducer  AnyReducer
	feeds    []*Feed
	pending  []Action
	inflight []*Feed // feeds still owed the in-flight action
	action   Action  // the in-flight action
	fanning  bool
	flushing bool
}

// NewStore builds a store around root and folds the initialization
// action through it.
func NewStore(root AnyReducer) *Store {
	s := &Store{reducer: root}
	s.Dispatch(Action{Type: initType})
	return s
}

// State returns the current composite state.
func (s *Store) State() any {
	return s.state
}

// Feed subscribes a new endpoint to the store's action stream. The
// feed observes actions dispatched after subscription; wrap it with
// [ScopeFeed] for the facet-scoped view.
func (s *Store) Feed() *Feed {
	fd := newFeed(s)
	s.feeds = append(s.feeds, fd)
	return fd
}

// Dispatch folds a through the root reducer and fans it out to every
// live feed, waiting with adaptive backoff while consumer rings are
// full. Actions looped back by feeds in the meantime are drained and
// dispatched in arrival order after the current action completes:
// each action runs to completion before the next begins. Re-entrant
// calls are queued the same way.
//
// A feed whose consumer stops taking while matching actions keep
// arriving eventually stalls dispatch on its bounded ring; close feeds
// that are abandoned.
func (s *Store) Dispatch(a Action) {
	s.pending = append(s.pending, a)
	if s.flushing {
		return
	}
	s.flushing = true
	defer func() { s.flushing = false }()
	var bo iox.Backoff
	for {
		progress := s.tryFlush()
		s.drainPuts()
		if !s.fanning && len(s.pending) == 0 {
			return
		}
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

// Pump drains looped-back actions and advances dispatch without
// waiting: it finishes what it can of the in-flight fan-out, then
// reduces and fans out queued actions until delivery stalls on a full
// ring. Reports whether any progress was made. The owner loop of a
// blocking topology calls Pump between its own work; [Drive] pumps
// internally.
func (s *Store) Pump() bool {
	s.drainPuts()
	if s.flushing {
		return false
	}
	s.flushing = true
	defer func() { s.flushing = false }()
	return s.tryFlush()
}

// tryFlush advances dispatch without waiting: finishes what it can of
// the in-flight fan-out, then reduces and begins fan-out of pending
// actions. Returns once delivery stalls or nothing is left, reporting
// whether any progress was made.
func (s *Store) tryFlush() bool {
	progress := false
	for {
		for s.fanning {
			if !s.deliver() {
				return progress
			}
			progress = true
		}
		if len(s.pending) == 0 {
			return progress
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.state = s.reducer(s.state, next)
		s.beginFanout(next)
		progress = true
	}
}

// beginFanout records a as in flight for every currently subscribed
// feed. Feeds subscribed later do not observe it.
func (s *Store) beginFanout(a Action) {
	if len(s.feeds) == 0 {
		return
	}
	s.action = a
	s.inflight = append(s.inflight[:0], s.feeds...)
	s.fanning = true
}

// deliver makes one pass over the in-flight fan-out: enqueues into
// rings with space, unlinks closed feeds, and keeps full ones for the
// next pass. Reports whether any feed was delivered or unlinked;
// clears the in-flight record once every live feed holds the action.
func (s *Store) deliver() bool {
	progress := false
	kept := s.inflight[:0]
	for _, fd := range s.inflight {
		if fd.closed.Load() != 0 {
			s.unlink(fd)
			progress = true
			continue
		}
		slot := s.action
		if err := fd.takeQ.Enqueue(&slot); err != nil {
			kept = append(kept, fd)
			continue
		}
		progress = true
	}
	s.inflight = kept
	if len(s.inflight) == 0 {
		s.fanning = false
		s.action = Action{}
	}
	return progress
}

// drainPuts moves looped-back actions from every feed's put ring into
// the pending queue, preserving per-feed order.
func (s *Store) drainPuts() {
	for _, fd := range s.feeds {
		for {
			a, err := fd.putQ.Dequeue()
			if err != nil {
				break
			}
			s.pending = append(s.pending, a)
		}
	}
}

// unlink removes a closed feed from the subscription list.
func (s *Store) unlink(fd *Feed) {
	for i, g := range s.feeds {
		if g == fd {
			s.feeds = append(s.feeds[:i], s.feeds[i+1:]...)
			return
		}
	}
}
