package yatgpoller

import "errors"

var ErrFailedToLoadOffset = errors.New("[POLLER] failed to load stored offset")
