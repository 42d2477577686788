// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

// Pattern is a pure filter predicate over actions. Patterns never
// mutate the action and never fault; richer filters are built by
// ordinary function composition.
type Pattern func(Action) bool

// HasFacet returns the pattern accepting exactly the actions tagged
// with facet identity f. Untagged actions match no facet.
func HasFacet(f Facet) Pattern {
	return func(a Action) bool {
		got, ok := FacetOf(a)
		return ok && got == f
	}
}

// Anything is the wildcard pattern: every action matches.
func Anything(Action) bool { return true }

// OfType returns the pattern matching actions whose Type equals any of
// the given names.
func OfType(types ...string) Pattern {
	return func(a Action) bool {
		for _, t := range types {
			if a.Type == t {
				return true
			}
		}
		return false
	}
}
