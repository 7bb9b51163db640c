// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package shmq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests, which trigger false positives
// because slot payloads are ordered by the slot tag, a separate variable.
const RaceEnabled = true
