package yatgmethods

import "errors"

var (
	ErrEncodeRequest   = errors.New("failed to encode request")
	ErrDuplicateAttach = errors.New("two uploads share one attach name")
)
