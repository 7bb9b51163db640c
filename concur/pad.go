// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

// CacheLineSize is the assumed cache line size used for padding.
const CacheLineSize = 64

// pad is cache line padding to prevent false sharing.
type pad [CacheLineSize]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [CacheLineSize - 8]byte
