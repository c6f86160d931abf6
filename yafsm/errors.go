package yafsm

import "errors"

var (
	ErrFailedToLoadState   = errors.New("[FSM] failed to load state")
	ErrFailedToStoreState  = errors.New("[FSM] failed to store state")
	ErrStateMismatch       = errors.New("[FSM] stored state has another name")
	ErrFailedToDecodeState = errors.New("[FSM] failed to decode state data")
)
