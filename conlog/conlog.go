// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

var (
	p  func(string, ...interface{}) = slogPrintf(slog.LevelInfo)
	dp func(string, ...interface{}) = slogPrintf(slog.LevelDebug)
	wp func(string, ...interface{}) = slogPrintf(slog.LevelWarn)

	developer atomic.Bool
)

func slogPrintf(level slog.Level) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		msg := strings.TrimRight(fmt.Sprintf(format, v...), "\n")
		slog.Log(context.Background(), level, msg)
	}
}

func SetPrintf(f func(string, ...interface{})) {
	p = f
}

func SetDPrintf(f func(string, ...interface{})) {
	dp = f
}

func SetWarnf(f func(string, ...interface{})) {
	wp = f
}

// SetDeveloper toggles DPrintf output. It is driven by the developer cvar.
func SetDeveloper(b bool) {
	developer.Store(b)
}

func Developer() bool {
	return developer.Load()
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

// DPrintf only prints in developer mode
func DPrintf(format string, v ...interface{}) {
	if !developer.Load() {
		return
	}
	dp(format, v...)
}

func Warnf(format string, v ...interface{}) {
	wp(format, v...)
}
