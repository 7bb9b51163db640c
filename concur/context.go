// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import "code.hybscloud.com/atomix"

// Context caches the last cursor value each side observed of the other.
//
// The cache is accessed with relaxed ordering only. It may lag behind the
// Header arbitrarily and is always safe to discard.
type Context struct {
	_    pad
	head atomix.Uint64 // Producers' view of the consumer cursor
	_    pad
	tail atomix.Uint64 // Consumers' view of the producer cursor
	_    pad
}

// Reset discards the cached cursors.
func (c *Context) Reset() {
	c.head.StoreRelaxed(0)
	c.tail.StoreRelaxed(0)
}
