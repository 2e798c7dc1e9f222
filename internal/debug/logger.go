// Package debug provides the toggleable diagnostic logger shared by the
// watch core and the cmd/ entry points. It is a no-op unless a caller
// opts in, so the library never writes anywhere on its own.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Logger is implemented by both FileLogger and NoOpLogger.
type Logger interface {
	Log(format string, args ...interface{})
	LogWithSample(message string, content string)
}

// FileLogger writes timestamped debug logs to a file.
type FileLogger struct {
	file  *os.File
	mutex sync.Mutex
}

// NoOpLogger discards everything. It's the default so a library consumer
// never gets unsolicited file I/O.
type NoOpLogger struct{}

var globalLogger Logger = &NoOpLogger{}

// InitLogger initializes the global logger. Passing enabled=false restores
// the no-op logger.
func InitLogger(enabled bool) error {
	if !enabled {
		globalLogger = &NoOpLogger{}
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".k8s-watch")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile := filepath.Join(logDir, "debug.log")
	file, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	globalLogger = &FileLogger{file: file}
	globalLogger.Log("=== watch session logging started ===")
	return nil
}

// GetLogger returns the current global logger.
func GetLogger() Logger {
	return globalLogger
}

// CloseLogger closes the log file, if one is open.
func CloseLogger() error {
	if fl, ok := globalLogger.(*FileLogger); ok {
		fl.mutex.Lock()
		defer fl.mutex.Unlock()
		return fl.file.Close()
	}
	return nil
}

// Log writes a formatted, timestamped message.
func (l *FileLogger) Log(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, message)
	l.file.Sync()
}

// LogWithSample writes a message alongside a truncated sample of content —
// used by the step function to record the first/last bytes of a line that
// failed to decode, without flooding the log with a full payload.
func (l *FileLogger) LogWithSample(message string, content string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	length := len(content)

	sampleSize := 200
	var firstSample, lastSample string
	if length <= sampleSize*2 {
		firstSample = content
	} else {
		firstSample = content[:sampleSize]
		lastSample = content[length-sampleSize:]
	}

	firstSample = strings.ReplaceAll(firstSample, "\n", "\\n")
	lastSample = strings.ReplaceAll(lastSample, "\n", "\\n")

	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, message)
	fmt.Fprintf(l.file, "  length=%d bytes\n", length)
	fmt.Fprintf(l.file, "  first %d chars: %q\n", sampleSize, firstSample)
	if lastSample != "" {
		fmt.Fprintf(l.file, "  last %d chars: %q\n", sampleSize, lastSample)
	}
	l.file.Sync()
}

func (l *NoOpLogger) Log(format string, args ...interface{})       {}
func (l *NoOpLogger) LogWithSample(message string, content string) {}
