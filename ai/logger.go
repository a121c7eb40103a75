// logger.go provides file-based logging for all AI interactions.
//
// Logs are written to ~/.pgquill/logs/ai.log with timestamps, one
// block per request/response pair. Gated on the same enable_logging
// switch as applog.
package ai

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	logMu      sync.Mutex
	logOnce    sync.Once
	logFile    *os.File
	logEnabled bool
)

// SetLogEnabled turns AI interaction logging on or off. Called once
// at startup from the loaded configuration.
func SetLogEnabled(enabled bool) {
	logMu.Lock()
	defer logMu.Unlock()
	logEnabled = enabled
}

func initLog() {
	logOnce.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return
		}
		logDir := filepath.Join(homeDir, ".pgquill", "logs")
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return
		}
		f, err := os.OpenFile(filepath.Join(logDir, "ai.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return
		}
		logFile = f
	})
}

func logWrite(s string) {
	logMu.Lock()
	defer logMu.Unlock()
	if !logEnabled {
		return
	}
	initLog()
	if logFile != nil {
		logFile.WriteString(s) //nolint:errcheck
	}
}

// LogRequest logs an AI request with the operation name and its input
// sections.
func LogRequest(operation, provider string, sections map[string]string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"\n════════════════════════════════════════════════════════════════\n"+
			"[REQUEST] %s  |  Op: %s  |  Provider: %s\n"+
			"════════════════════════════════════════════════════════════════\n",
		ts, operation, provider,
	))
	for k, v := range sections {
		sb.WriteString(fmt.Sprintf("%s:\n%s\n────────────────────────────────────────\n", k, v))
	}
	logWrite(sb.String())
}

// LogResponse logs an AI response (or transport error) for the given
// operation.
func LogResponse(operation, response string, err error) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	errStr := "(none)"
	if err != nil {
		errStr = err.Error()
	}
	logWrite(fmt.Sprintf(
		"[RESPONSE] %s  |  Op: %s\n"+
			"────────────────────────────────────────\n"+
			"Error: %s\n"+
			"────────────────────────────────────────\n"+
			"Response:\n%s\n"+
			"════════════════════════════════════════════════════════════════\n\n",
		ts, operation, errStr, response,
	))
}
