package yalogger

import "errors"

var ErrInvalidLogLevel = errors.New("invalid log level")

// Level mirrors logrus level ordering so it can be converted directly.
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

type BaseLoggerType uint8

const (
	Logrus BaseLoggerType = iota
)

const (
	KeyRequestID       = "request_id"
	KeySystemRequestID = "system_request_id"
	KeyUserID          = "user_id"
	KeyChatID          = "chat_id"
	KeyUpdateID        = "update_id"
	KeyMethod          = "method"
)

const defaultTimestampFormat = "2006-01-02 15:04:05"
