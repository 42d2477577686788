// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

// Join folds each entry's partition with its own reducer and rebuilds
// the composite map state. Partitions are independently owned: no
// entry reads or writes a sibling key, so evaluation order cannot be
// observed. The nil uninitialized sentinel is handed to every entry on
// the first fold.
//
// A sub-reducer must not return nil: nil is reserved as the
// uninitialized sentinel, and a nil partition would re-run
// initialization on every following action.
func Join(reducers map[Facet]AnyReducer) AnyReducer {
	return func(state any, a Action) any {
		prev, _ := state.(map[Facet]any)
		next := make(map[Facet]any, len(reducers))
		for f, r := range reducers {
			sub := r(prev[f], a)
			if sub == nil {
				panic("facet: reducer for mounted facet returned nil state")
			}
			next[f] = sub
		}
		return next
	}
}

// Combine mounts each reducer at its facet key and restricts it to
// actions tagged with the same identity: [Scope] per entry, then
// [Join]. One map key serves as both the filter identity and the mount
// point, so a scoped write can only ever land in its own partition.
func Combine(reducers map[Facet]AnyReducer) AnyReducer {
	scoped := make(map[Facet]AnyReducer, len(reducers))
	for f, r := range reducers {
		scoped[f] = Scope(f, r)
	}
	return Join(scoped)
}

// Partition reads the sub-tree mounted at f from a composite state.
// Returns nil when the state is not a composite map or holds no such
// partition. Never faults.
//
// Reading assumes the writing side mounted the facet's reducer at the
// same key; [Combine] guarantees that alignment by construction.
func Partition(state any, f Facet) any {
	m, _ := state.(map[Facet]any)
	return m[f]
}
