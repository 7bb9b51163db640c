// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !shmq_debug

package shmq

import "log/slog"

// SetLogger sets the logger for the shmq package.
// Without the shmq_debug build tag this does nothing; the signature is kept
// so user code compiles either way.
func SetLogger(*slog.Logger) {}

// logDebug is a no-op in release builds.
func logDebug(string, ...any) {}
