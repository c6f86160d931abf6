package yatgtypes

import "errors"

var (
	ErrUnknownEntityType = errors.New("unknown message entity type")
	ErrUnknownChatType   = errors.New("unknown chat type")
)
