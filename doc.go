// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package facet namespaces a shared action stream into per-facet state
// partitions, with handler programs as algebraic effects on
// [code.hybscloud.com/kont].
//
// A facet is a string identity carried on action metadata. One reducer
// and one handler program can serve any number of facets at once:
// scoped reducers see only matching actions, scoped feeds carry only
// them, and scoped dispatchers tag outgoing actions on the way in.
//
// # Architecture
//
//   - Identity: [Tag], [FacetOf] and [HasFacet] write and read the facet name on [Action] metadata.
//   - Reduction: [Scope] narrows a reducer to one facet; [Combine] mounts scoped reducers into a composite state keyed by facet.
//   - Transport: Lock-free bounded SPSC queues via [code.hybscloud.com/lfq]. [Store.Feed] subscribes an endpoint; [ScopeFeed] builds the per-facet view.
//   - Non-blocking: Operations return [code.hybscloud.com/iox.ErrWouldBlock] on backpressure.
//   - Execution: Dual-world API supporting closure-based (Cont-world) and defunctionalized (Expr-world) evaluation.
//   - Error Handling: Stream operations are non-blocking, while error operations short-circuit returning [code.hybscloud.com/kont.Either].
//
// # API Topologies
//
//   - Operations: [Take], [Put] on a [Feed].
//   - Cont-world: [TakeBind], [PutThen], [TakeEvery].
//   - Expr-world: Zero-allocation variants [ExprTakeBind], [ExprPutThen], [ExprTakeEvery]. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [ExprLoop] for trampoline-based handler loops.
//
// # Integration
//
//   - Stepping: [Step] and [Advance] (or [StepError]/[AdvanceError]) evaluate programs one effect at a time; [Saga] tasks interleave with store pumping under [Drive].
//   - Blocking: [Exec] and [ExecError] (and Expr variants) wait past boundaries using adaptive backoff.
//   - Binding: [Connect], [ScopeBinding] and [ScopeContainer] wire view and dispatch mappers to a facet.
//
// # Example
//
//	st := facet.NewStore(facet.Combine(map[facet.Facet]facet.AnyReducer{
//		"users": facet.Lift(0, counter),
//		"posts": facet.Lift(0, counter),
//	}))
//	st.Dispatch(facet.Tag(facet.Action{Type: "INCREMENT"}, "users"))
//	n := facet.Partition(st.State(), "users") // 1; "posts" untouched
package facet
