// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

// Reducer folds one action into a state value. Reducers are pure: the
// same state and action always produce the same next state, and the
// inputs are never mutated.
type Reducer[S any] func(S, Action) S

// AnyReducer is the erased-world reducer used by composition trees.
// The interface value nil is the not-yet-initialized state sentinel.
type AnyReducer = Reducer[any]

// Lift bridges a typed reducer into the erased world. The nil sentinel
// becomes initial, carrying the reducer's default-state semantics; any
// other state must hold an S.
func Lift[S any](initial S, r Reducer[S]) AnyReducer {
	return func(state any, a Action) any {
		if state == nil {
			return r(initial, a)
		}
		return r(state.(S), a)
	}
}

// Scope restricts r to actions tagged with facet identity f.
//
// Matching actions always forward, initialized or not. Non-matching
// actions forward only while state is the nil uninitialized sentinel,
// so the inner reducer can establish default state from untagged
// initialization actions; once state exists, non-matching actions
// return the state interface value unchanged.
func Scope(f Facet, r AnyReducer) AnyReducer {
	match := HasFacet(f)
	return func(state any, a Action) any {
		if state == nil || match(a) {
			return r(state, a)
		}
		return state
	}
}
