package yatgcommand

import "errors"

var (
	ErrNotACommand       = errors.New("[COMMAND] text is not a bot command")
	ErrTooFewArgs        = errors.New("[COMMAND] too few arguments")
	ErrTooManyArgs       = errors.New("[COMMAND] too many arguments")
	ErrInvalidArgument   = errors.New("[COMMAND] invalid argument")
	ErrWrongBotName      = errors.New("[COMMAND] command is addressed to another bot")
	ErrUnknownCommand    = errors.New("[COMMAND] unknown command")
	ErrInvalidTarget     = errors.New("[COMMAND] bind target must be a pointer to a struct")
	ErrOptionalNotLast   = errors.New("[COMMAND] only the last field may be optional")
	ErrUnknownRenameRule = errors.New("[COMMAND] unknown rename rule")
)
