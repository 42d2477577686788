// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package facet

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing subscription identifier.
// Each feed subscribed on a store is assigned the next serial value;
// scoped views share the serial of their underlying subscription.
type Serial = uint32

// counter is the global monotonic counter for feed serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
