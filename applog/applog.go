// Package applog provides general-purpose application logging.
//
// Logs are written to ~/.pgquill/logs/app.log with timestamps.
// Logging is disabled until Configure is called with enabled=true
// (the enable_logging config key); log_level filters entries below
// the configured severity.
package applog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarning
	levelError
)

var (
	mu       sync.Mutex
	once     sync.Once
	logFile  *os.File
	enabled  bool
	minLevel = levelInfo
)

// Configure sets the logging policy from the loaded configuration.
// Safe to call more than once; the log file is opened lazily on the
// first write.
func Configure(enable bool, logLevel string) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	minLevel = parseLevel(logLevel)
}

func parseLevel(s string) level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return levelDebug
	case "WARNING":
		return levelWarning
	case "ERROR":
		return levelError
	default:
		return levelInfo
	}
}

func openLog() {
	once.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return
		}
		logDir := filepath.Join(homeDir, ".pgquill", "logs")
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return
		}
		f, err := os.OpenFile(filepath.Join(logDir, "app.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return
		}
		logFile = f
	})
}

func write(lvl level, tag, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled || lvl < minLevel {
		return
	}
	openLog()
	if logFile == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	logFile.WriteString(fmt.Sprintf("[%s] %-7s %s\n", ts, tag, msg)) //nolint:errcheck
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	write(levelDebug, "DEBUG", format, args...)
}

// Info logs a general info message.
func Info(format string, args ...interface{}) {
	write(levelInfo, "INFO", format, args...)
}

// Warning logs a warning message.
func Warning(format string, args ...interface{}) {
	write(levelWarning, "WARNING", format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	write(levelError, "ERROR", format, args...)
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
