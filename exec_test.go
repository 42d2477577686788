// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet_test

import (
	"testing"

	"code.hybscloud.com/facet"
	"code.hybscloud.com/kont"
)

func TestExecTakeBuffered(t *testing.T) {
	skipRace(t)
	// ?ADD.end against a pre-delivered action
	st := facet.NewStore(facet.Combine(map[facet.Facet]facet.AnyReducer{
		"users": facet.Lift(0, countOf("ADD")),
	}))
	fd := facet.ScopeFeed("users", nil, st.Feed())

	st.Dispatch(facet.Tag(facet.Action{Type: "ADD", Payload: 42}, "users"))

	got := facet.Exec(fd, facet.TakeBind(func(a facet.Action) kont.Eff[int] {
		n, _ := a.Payload.(int)
		return kont.Pure(n)
	}))
	if got != 42 {
		t.Fatalf("payload got %d, want 42", got)
	}
}

func TestExecBlocksUntilDispatch(t *testing.T) {
	skipRace(t)
	st := facet.NewStore(facet.Combine(map[facet.Facet]facet.AnyReducer{
		"users": facet.Lift(0, countOf("ADD")),
	}))
	fd := facet.ScopeFeed("users", nil, st.Feed())

	var got string
	done := make(chan struct{})
	go func() {
		got = facet.Exec(fd, facet.TakeBind(func(a facet.Action) kont.Eff[string] {
			return kont.Pure(a.Type)
		}))
		close(done)
	}()

	st.Dispatch(facet.Tag(facet.Action{Type: "ADD"}, "users"))
	<-done

	if got != "ADD" {
		t.Fatalf("type got %q, want %q", got, "ADD")
	}
}

func TestExecPutLoopback(t *testing.T) {
	skipRace(t)
	// !ADD.?ADD.end — the handler's own put loops back through the store
	st := facet.NewStore(facet.Combine(map[facet.Facet]facet.AnyReducer{
		"users": facet.Lift(0, countOf("ADD")),
	}))
	fd := facet.ScopeFeed("users", nil, st.Feed())

	var got facet.Facet
	done := make(chan struct{})
	go func() {
		got = facet.Exec(fd, facet.PutThen(facet.Action{Type: "ADD"},
			facet.TakeBind(func(a facet.Action) kont.Eff[facet.Facet] {
				f, _ := facet.FacetOf(a)
				return kont.Pure(f)
			}),
		))
		close(done)
	}()
	pumpUntil(st, done)

	if got != "users" {
		t.Fatalf("facet got %q, want %q", got, "users")
	}
	if state := facet.Partition(st.State(), "users"); state != 1 {
		t.Fatalf("users got %v, want 1", state)
	}
}

func TestExecExprWorld(t *testing.T) {
	skipRace(t)
	st := facet.NewStore(facet.Combine(map[facet.Facet]facet.AnyReducer{
		"users": facet.Lift(0, countOf("ADD")),
	}))
	fd := facet.ScopeFeed("users", nil, st.Feed())

	st.Dispatch(facet.Tag(facet.Action{Type: "ADD"}, "users"))

	got := facet.ExecExpr(fd, facet.ExprTakeBind(func(a facet.Action) kont.Expr[string] {
		return kont.ExprReturn(a.Type)
	}))
	if got != "ADD" {
		t.Fatalf("type got %q, want %q", got, "ADD")
	}
}

func TestExecClosedFeedShortCircuits(t *testing.T) {
	skipRace(t)
	st := facet.NewStore(facet.Lift(0, countOf("X")))
	fd := facet.ScopeFeed("users", nil, st.Feed())
	fd.Close()

	got := facet.Exec(fd, facet.TakeBind(func(a facet.Action) kont.Eff[string] {
		return kont.Pure(a.Type)
	}))
	if got != "" {
		t.Fatalf("result got %q, want zero", got)
	}
}

func TestExecDispatchUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }

	st := facet.NewStore(facet.Lift(0, countOf("X")))
	fd := st.Feed()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unhandled effect")
		}
		msg, ok := r.(string)
		if !ok || msg != "facet: unhandled effect in streamHandler" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	facet.Exec(fd, kont.Perform(bogus{}))
}
