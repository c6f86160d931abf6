package yatgbot

import "errors"

var (
	ErrHandlerPanicked  = errors.New("[ROUTER] handler panicked")
	ErrFailedToGetState = errors.New("[ROUTER] failed to get conversation state")
)
