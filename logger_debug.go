// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build shmq_debug

package shmq

import (
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/lmittmann/tint"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug})))
}

// SetLogger sets the logger for the shmq package. A nil l discards all
// output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

func logDebug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}
