// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

// Dispatcher feeds one action into the hosting store.
type Dispatcher func(Action)

// MapState derives a view input V from the hosting store's state and a
// component's own props P.
type MapState[P, V any] func(state any, own P) V

// MapDispatch binds action callbacks D over a dispatcher and a
// component's own props P.
type MapDispatch[P, D any] func(dispatch Dispatcher, own P) D

// Connect is the container-connection contract of the hosting view
// layer: it accepts the two prop mappers and returns the host's bound
// container value. Subscription, prop merging, and re-render policy
// all belong to the host.
type Connect[P, V, D, C any] func(MapState[P, V], MapDispatch[P, D]) C

// ScopeDispatcher wraps dispatch so every outgoing action is tagged
// with facet identity f before it reaches the store.
func ScopeDispatcher(f Facet, dispatch Dispatcher) Dispatcher {
	return func(a Action) {
		dispatch(Tag(a, f))
	}
}

// ScopeBinding narrows a prop-mapper pair to facet identity f: the
// state mapper sees only the partition mounted at f, and the dispatch
// mapper's dispatcher tags every outgoing action with f. Everything
// else is delegated, so a component written against a whole store runs
// unmodified against its slice.
func ScopeBinding[P, V, D any](f Facet, mapState MapState[P, V], mapDispatch MapDispatch[P, D]) (MapState[P, V], MapDispatch[P, D]) {
	ms := func(state any, own P) V {
		return mapState(Partition(state, f), own)
	}
	md := func(dispatch Dispatcher, own P) D {
		return mapDispatch(ScopeDispatcher(f, dispatch), own)
	}
	return ms, md
}

// ScopeContainer builds a facet-scoped container through the host's
// connect: [ScopeBinding] on the mappers, everything else untouched.
func ScopeContainer[P, V, D, C any](f Facet, connect Connect[P, V, D, C], mapState MapState[P, V], mapDispatch MapDispatch[P, D]) C {
	ms, md := ScopeBinding(f, mapState, mapDispatch)
	return connect(ms, md)
}
