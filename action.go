// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import "maps"

// Facet is an opaque identity token naming one slice of the application.
// Components cooperate on a slice only when they hold equal Facet values;
// the package never interprets the token beyond equality.
type Facet = string

// Meta is the open metadata envelope attached to an action.
// The facet tag occupies a single well-known key; everything else
// belongs to the application and is passed through untouched.
type Meta = map[string]any

// facetKey is the Meta key carrying the facet identity.
const facetKey = "facetName"

// Action is one unit of intent flowing through the hosting store.
// Type names the action, Payload carries its optional argument, and
// Meta holds decorations such as the facet tag.
type Action struct {
	Type    string
	Payload any
	Meta    Meta
}

// Tag returns a copy of a tagged with facet identity f.
// The Meta envelope is cloned, never mutated in place: sibling entries
// survive, the facet key is added or overwritten, and the input action
// is left untouched.
func Tag(a Action, f Facet) Action {
	m := maps.Clone(a.Meta)
	if m == nil {
		m = make(Meta, 1)
	}
	m[facetKey] = f
	a.Meta = m
	return a
}

// FacetOf reports the facet identity carried by a, if any.
// Untagged actions (no Meta, no facet key, or a value that is not an
// identity token) report ok=false. Never faults on any action shape.
func FacetOf(a Action) (f Facet, ok bool) {
	v, present := a.Meta[facetKey]
	if !present {
		return "", false
	}
	f, ok = v.(string)
	return f, ok
}

// WithFacet returns a tagger bound to f: the curried form of [Tag] for
// call sites that decorate many actions with one identity.
func WithFacet(f Facet) func(Action) Action {
	return func(a Action) Action {
		return Tag(a, f)
	}
}
