// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprTake        kont.Erased = Take{}
)

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

func takeBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Action) kont.Expr[B])
	result := f(current.(Action))
	return kont.Erased(result.Value), result.Frame
}

// ExprTakeBind takes the next visible action and passes it to f.
// Fuses ExprPerform(Take{}) + ExprBind.
func ExprTakeBind[B any](f func(Action) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = takeBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprTake
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprPutThen dispatches a and then continues with next.
// Fuses ExprPerform(Put{Action: a}) + ExprThen.
func ExprPutThen[B any](a Action, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Put{Action: a}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprTakeEvery runs body for every visible action, forever.
// Builds on ExprLoop + ExprTakeBind: the loop never takes the Right
// branch, so the program ends only by feed close or handler cancellation.
func ExprTakeEvery[A any](body func(Action) kont.Expr[struct{}]) kont.Expr[A] {
	return ExprLoop(struct{}{}, func(struct{}) kont.Expr[kont.Either[struct{}, A]] {
		return ExprTakeBind(func(a Action) kont.Expr[kont.Either[struct{}, A]] {
			m := body(a)
			left := kont.Left[struct{}, A](struct{}{})
			if _, ok := m.Frame.(kont.ReturnFrame); ok {
				return kont.ExprReturn(left)
			}
			tf := kont.AcquireThenFrame()
			tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(left), Frame: exprReturnFrame}
			tf.Next = exprReturnFrame
			var zero kont.Either[struct{}, A]
			return kont.Expr[kont.Either[struct{}, A]]{
				Value: zero,
				Frame: kont.ChainFrames(m.Frame, tf),
			}
		})
	})
}
