package logger

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// Logger defines the interface for logging
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// ZerologLogger logs structured JSON to stderr
type ZerologLogger struct {
	log zerolog.Logger
}

func NewZerologLogger(service string) *ZerologLogger {
	l := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", service).
		Logger()

	return &ZerologLogger{log: l}
}

// Info logs an info message
func (zl *ZerologLogger) Info(msg string, fields ...Field) {
	zl.emit(zl.log.Info(), msg, fields)
}

// Warn logs a warning message
func (zl *ZerologLogger) Warn(msg string, fields ...Field) {
	zl.emit(zl.log.Warn(), msg, fields)
}

// Error logs an error message
func (zl *ZerologLogger) Error(msg string, fields ...Field) {
	zl.emit(zl.log.Error(), msg, fields)
}

func (zl *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		ev = ev.Interface(f.Key, f.Value)
	}
	ev.Msg(msg)
}

type MockLogger struct{}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Info logs an info message
func (ml *MockLogger) Info(msg string, fields ...Field) {
	printLine("INFO", msg, fields)
}

// Warn logs a warning message
func (ml *MockLogger) Warn(msg string, fields ...Field) {
	printLine("WARN", msg, fields)
}

// Error logs an error message
func (ml *MockLogger) Error(msg string, fields ...Field) {
	printLine("ERROR", msg, fields)
}

func printLine(level, msg string, fields []Field) {
	fmt.Printf("[%s] %s", level, msg)
	if len(fields) > 0 {
		fmt.Print(" [")
		for i, f := range fields {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s=%v", f.Key, f.Value)
		}
		fmt.Print("]")
	}
	fmt.Println()
}
