package messagequeue

import "errors"

var (
	ErrJobCanceled = errors.New("[QUEUE] job was canceled")
	ErrQueueClosed = errors.New("[QUEUE] queue is closed")
)
