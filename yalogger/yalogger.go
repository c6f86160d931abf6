// Package yalogger is a small structured logging facade used across the
// bot API packages. The only backend is logrus.
//
// Example usage:
//
//	log := yalogger.NewBaseLogger(&yalogger.Config{Level: yalogger.InfoLevel}).NewLogger()
//	log.WithField(yalogger.KeyChatID, 42).Info("message sent")
package yalogger

import (
	"github.com/google/uuid"
)

// Config defines the configuration options for the logger.
//
// BaseLoggerType: The type of logger to use (e.g., Logrus).
// Level: The minimum log level to output (e.g., Info).
// FullTimestamp: Whether to include the full timestamp in log messages.
// DisableTimestamp: Whether to disable timestamps in log messages.
// TimestampFormat: The format to use for timestamps in log messages.
type Config struct {
	BaseLoggerType   BaseLoggerType
	Level            Level `default:"info"`
	FullTimestamp    bool
	DisableTimestamp bool
	TimestampFormat  string `default:"2006-01-02 15:04:05"`
}

// BaseLogger creates Logger instances that share one output and level.
type BaseLogger interface {
	NewLogger() Logger
}

// Logger defines a structured logging interface with support for various log levels,
// formatting, and context-aware logging using key-value fields.
type Logger interface {
	// Info logs a message at the Info level.
	//
	// Example usage:
	//
	//   logger.Info("Polling started")
	Info(msg string)
	Infof(format string, args ...any)

	// Trace logs a message at the Trace level. Request and response bodies
	// are logged here.
	Trace(msg string)
	Tracef(format string, args ...any)

	Debug(msg string)
	Debugf(format string, args ...any)

	Warn(msg string)
	Warnf(format string, args ...any)

	// Error logs a message at the Error level.
	//
	// Example usage:
	//
	//   logger.Error("getUpdates failed")
	Error(msg string)
	Errorf(format string, args ...any)

	// Fatalf logs a formatted message and terminates the process.
	//
	// Example usage:
	//
	//   logger.Fatalf("Cannot load config: %v", err)
	Fatalf(format string, args ...any)

	// WithField returns a logger instance with a single field added to the context.
	//
	// Example usage:
	//
	//   logger.WithField(yalogger.KeyChatID, 42)
	WithField(key string, value any) Logger

	// WithFields returns a logger instance with multiple fields added to the context.
	WithFields(fields map[string]any) Logger

	// WithRequestUUID returns a logger with a UUID request ID in the context.
	//
	// Example usage:
	//
	//   logger.WithRequestUUID(uuid.New())
	WithRequestUUID(id uuid.UUID) Logger

	// WithRandomRequestID is WithRequestUUID with a freshly generated UUID.
	WithRandomRequestID() Logger

	WithUserID(userID int64) Logger

	// GetField returns the value of a field from the current log context,
	// or nil when the field is absent.
	GetField(key string) any
	GetFields() map[string]any
}
