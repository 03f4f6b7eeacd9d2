// Package rt holds runtime-wide ambient concerns shared by every other
// package: the diagnostic logger and the host error kinds raised by the
// value, GC, and cursor subsystems.
package rt

import (
	"log/slog"
	"os"
)

// Log is the process-wide diagnostic logger. It is deliberately quiet:
// the scheduler (process lifecycle), the GC (collect cycles) and the
// mint command (--breakpoint, --wait) write to it, and only at Debug
// level, since no testable property depends on its output.
var Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// SetDebug raises the logger to debug level, used by the CLI's --debug
// flag when a caller wants scheduler and GC chatter.
func SetDebug(on bool) {
	level := slog.LevelInfo
	if on {
		level = slog.LevelDebug
	}
	Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
