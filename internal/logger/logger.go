// Package logger is a thin package-level wrapper around charmbracelet/log so
// pipeline stages can log key-value pairs without threading a logger through
// every call.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.RWMutex
	current = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
)

// InitWriter replaces the global logger, writing to w. debug lowers the
// level to DEBUG.
func InitWriter(w io.Writer, debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	mu.Lock()
	current = l
	mu.Unlock()
}

func get() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Debug(message string, keyvals ...any) {
	get().Debug(message, keyvals...)
}

func Info(message string, keyvals ...any) {
	get().Info(message, keyvals...)
}

func Warn(message string, keyvals ...any) {
	get().Warn(message, keyvals...)
}

func Error(message string, keyvals ...any) {
	get().Error(message, keyvals...)
}
