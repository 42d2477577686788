// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet_test

import (
	"testing"

	"code.hybscloud.com/facet"
)

func TestLiftInitial(t *testing.T) {
	r := facet.Lift(10, countOf("ADD"))

	// The nil sentinel folds from the initial value.
	state := r(nil, facet.Action{Type: "ADD"})
	if state != 11 {
		t.Fatalf("state got %v, want 11", state)
	}
	// An existing state passes through typed.
	state = r(state, facet.Action{Type: "ADD"})
	if state != 12 {
		t.Fatalf("state got %v, want 12", state)
	}
}

func TestLiftInitialNoMatch(t *testing.T) {
	r := facet.Lift(10, countOf("ADD"))

	// Initialization without a matching action still establishes the
	// default state.
	state := r(nil, facet.Action{Type: "boot"})
	if state != 10 {
		t.Fatalf("state got %v, want 10", state)
	}
}

func TestScopeForwardsMatching(t *testing.T) {
	r := facet.Scope("users", facet.Lift(0, countOf("ADD")))

	state := r(nil, facet.Action{Type: "boot"})
	state = r(state, facet.Tag(facet.Action{Type: "ADD"}, "users"))
	state = r(state, facet.Tag(facet.Action{Type: "ADD"}, "users"))
	if state != 2 {
		t.Fatalf("state got %v, want 2", state)
	}
}

func TestScopeBlocksForeign(t *testing.T) {
	r := facet.Scope("users", facet.Lift(0, countOf("ADD")))

	state := r(nil, facet.Action{Type: "boot"})
	state = r(state, facet.Tag(facet.Action{Type: "ADD"}, "posts"))
	state = r(state, facet.Action{Type: "ADD"})
	if state != 0 {
		t.Fatalf("state got %v, want 0", state)
	}
}

func TestScopeBlockedKeepsIdentity(t *testing.T) {
	type box struct{ n int }
	r := facet.Scope("users", func(state any, a facet.Action) any {
		if state == nil {
			return &box{}
		}
		return &box{n: state.(*box).n + 1}
	})

	state := r(nil, facet.Action{Type: "boot"})
	next := r(state, facet.Tag(facet.Action{Type: "ADD"}, "posts"))
	// A blocked action returns the same interface value, not a copy.
	if next != state {
		t.Fatal("blocked action must return the identical state value")
	}
	next = r(state, facet.Tag(facet.Action{Type: "ADD"}, "users"))
	if next == state {
		t.Fatal("matching action must produce a new state value")
	}
}

func TestScopeUninitializedForwardsAll(t *testing.T) {
	// While state is the nil sentinel every action forwards, so the
	// inner reducer can establish defaults from untagged
	// initialization actions.
	var seen []string
	r := facet.Scope("users", func(state any, a facet.Action) any {
		seen = append(seen, a.Type)
		return "ready"
	})

	state := r(nil, facet.Tag(facet.Action{Type: "FOREIGN"}, "posts"))
	if state != "ready" {
		t.Fatalf("state got %v, want %q", state, "ready")
	}
	if len(seen) != 1 || seen[0] != "FOREIGN" {
		t.Fatalf("forwarded actions got %v, want [FOREIGN]", seen)
	}

	// Once initialized the same foreign action is blocked.
	r(state, facet.Tag(facet.Action{Type: "FOREIGN"}, "posts"))
	if len(seen) != 1 {
		t.Fatalf("foreign action forwarded after initialization: %v", seen)
	}
}

func TestScopeSharedReducer(t *testing.T) {
	// One reducer function serves two facets with independent folds.
	count := facet.Lift(0, countOf("ADD"))
	users := facet.Scope("users", count)
	posts := facet.Scope("posts", count)

	u := users(nil, facet.Action{Type: "boot"})
	p := posts(nil, facet.Action{Type: "boot"})

	a := facet.Tag(facet.Action{Type: "ADD"}, "users")
	u = users(u, a)
	p = posts(p, a)

	if u != 1 {
		t.Fatalf("users got %v, want 1", u)
	}
	if p != 0 {
		t.Fatalf("posts got %v, want 0", p)
	}
}
