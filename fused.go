// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/kont"
)

// TakeBind takes the next visible action and passes it to f.
// Fuses Perform(Take{}) + Bind.
func TakeBind[B any](f func(Action) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Take{}), f)
}

// PutThen dispatches a and then continues with next.
// Fuses Perform(Put{Action: a}) + Then.
func PutThen[B any](a Action, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Put{Action: a}), next)
}

// TakeEvery runs body for every visible action, forever.
// Builds on Loop + TakeBind: the loop never takes the Right branch, so
// the program ends only by feed close or handler cancellation.
func TakeEvery[A any](body func(Action) kont.Eff[struct{}]) kont.Eff[A] {
	return Loop(struct{}{}, func(struct{}) kont.Eff[kont.Either[struct{}, A]] {
		return TakeBind(func(a Action) kont.Eff[kont.Either[struct{}, A]] {
			return kont.Then(body(a), kont.Pure(kont.Left[struct{}, A](struct{}{})))
		})
	})
}
