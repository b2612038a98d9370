package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger wraps standard log with level-based output
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
	debug *log.Logger
	file  *os.File
}

// NewLogger creates a logger writing to the terminal only
func NewLogger() *Logger {
	return newLogger(os.Stdout, os.Stderr, nil)
}

// NewFileLogger creates a logger that also appends every line to path
func NewFileLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(io.MultiWriter(os.Stdout, f), io.MultiWriter(os.Stderr, f), f), nil
}

func newLogger(out, errOut io.Writer, file *os.File) *Logger {
	flags := log.LstdFlags | log.Lmsgprefix
	return &Logger{
		info:  log.New(out, "[INFO]  ", flags),
		warn:  log.New(out, "[WARN]  ", flags),
		error: log.New(errOut, "[ERROR] ", flags),
		debug: log.New(out, "[DEBUG] ", flags),
		file:  file,
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.info.Printf(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.warn.Printf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.error.Printf(msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.debug.Printf(msg, args...)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
