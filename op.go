// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import (
	"code.hybscloud.com/kont"
)

// Take is the effect operation for taking the next visible action.
// Perform(Take{}) yields the next action admitted by the feed's
// filter stages.
type Take struct {
	kont.Phantom[Action]
}

// DispatchStream handles Take on the feed transport.
// Non-blocking: returns iox.ErrWouldBlock while no visible action is
// buffered, ErrClosed once the feed is closed.
func (Take) DispatchStream(fd *Feed) (kont.Resumed, error) {
	a, err := fd.TryTake()
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Put is the effect operation for dispatching an action back into the
// hosting store. Perform(Put{Action: a}) forwards a through the
// feed's write side, which tags it with the feed's facet identity
// before it re-enters the store.
type Put struct {
	kont.Phantom[struct{}]
	Action Action
}

// DispatchStream handles Put on the feed transport.
// Non-blocking: returns iox.ErrWouldBlock while the bounded ring is
// full, ErrClosed once the feed is closed.
func (p Put) DispatchStream(fd *Feed) (kont.Resumed, error) {
	if err := fd.TryPut(p.Action); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}
