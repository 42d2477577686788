// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet_test

import (
	"code.hybscloud.com/facet"
	"code.hybscloud.com/kont"
)

// driveExpr runs a handler program to completion against fd via
// Step+Advance loop, pumping the store on iox.ErrWouldBlock.
// Used by stepping tests to exercise the non-blocking path.
func driveExpr[R any](st *facet.Store, fd *facet.Feed, program kont.Expr[R]) R {
	result, susp := facet.Step[R](program)
	for susp != nil {
		var err error
		result, susp, err = facet.Advance(fd, susp)
		if err != nil {
			st.Pump()
			continue
		}
	}
	return result
}

// pumpUntil keeps the store owner pumping while a blocking-world
// goroutine evaluates, returning once done is closed.
func pumpUntil(st *facet.Store, done chan struct{}) {
	for {
		st.Pump()
		select {
		case <-done:
			return
		default:
		}
	}
}

// countOf builds a reducer counting actions of one type.
func countOf(t string) facet.Reducer[int] {
	return func(state int, a facet.Action) int {
		if a.Type == t {
			return state + 1
		}
		return state
	}
}

// collectInts builds a reducer appending int payloads of one action type.
func collectInts(t string) facet.Reducer[[]int] {
	return func(state []int, a facet.Action) []int {
		if a.Type != t {
			return state
		}
		n, ok := a.Payload.(int)
		if !ok {
			return state
		}
		return append(state, n)
	}
}
