package yatgstorage

import "errors"

var (
	ErrFailedToGetOffset   = errors.New("failed to get update offset")
	ErrFailedToSetOffset   = errors.New("failed to set update offset")
	ErrFailedToParseOffset = errors.New("failed to parse update offset as int64")
	ErrFailedToMigrate     = errors.New("failed to migrate update offset table")
)
