package yacache

import "errors"

var (
	ErrKeyNotFound       = errors.New("[CACHE] key not found")
	ErrFailedToSet       = errors.New("[CACHE] failed to set value")
	ErrFailedToGetValue  = errors.New("[CACHE] failed to get value")
	ErrFailedToDelete    = errors.New("[CACHE] failed to delete value")
	ErrFailedToCheck     = errors.New("[CACHE] failed to check key")
	ErrFailedToPing      = errors.New("[CACHE] failed to ping")
	ErrFailedToClose     = errors.New("[CACHE] failed to close")
	ErrMemoryCacheClosed = errors.New("[MEMORY] cache is closed")
)
