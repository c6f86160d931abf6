package yatgclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yatgtypes"
)

// APIError is an unsuccessful Bot API response.
type APIError struct {
	Method      string
	Code        int
	Description string
	Parameters  yatgtypes.ResponseParameters
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Method, e.Code, e.Description)
}

func (e *APIError) Unwrap() error {
	return ErrAPIResponse
}

// RetryAfter reports how long the Bot API asked to wait before repeating a
// request answered with 429. It is zero for any other error.
//
// Example usage:
//
//	if _, err := client.SendMessage(ctx, req); err != nil {
//		if wait := yatgclient.RetryAfter(err); wait > 0 {
//			time.Sleep(wait)
//		}
//	}
func RetryAfter(err error) time.Duration {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0
	}

	return time.Duration(apiErr.Parameters.RetryAfter) * time.Second
}

// MigrateToChatID returns the new id of a group that was upgraded to a
// supergroup, or zero.
func MigrateToChatID(err error) int64 {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0
	}

	return apiErr.Parameters.MigrateToChatID
}
