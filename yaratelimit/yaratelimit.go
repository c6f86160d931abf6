// Package yaratelimit is a fixed-window rate limiter backed by a
// yacache.Cache. Bots use it for flood control: every (id, group) pair, a
// user and a command for example, gets Limit hits per window of Rate.
//
// # Storage layout
//
// Each subject is addressed by the key
//
//	yaratelimit:<id>:<group>
//
// and its value is the CSV tuple "<count>,<first_unix_milli>". For example
// "3,1726860000000" means three hits in the window that opened at that
// instant. Records expire together with their window.
package yaratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

var ErrMalformedWindow = errors.New("[RATE LIMIT] malformed window record")

// Window is the parsed record of one subject.
type Window struct {
	Count uint32
	Start time.Time
}

// RateLimit is a fixed-window limiter. The zero value is not valid; use
// NewRateLimit.
type RateLimit[T yacache.Container] struct {
	cache yacache.Cache[T]
	limit uint32
	rate  time.Duration
	now   func() time.Time
}

// NewRateLimit allows limit hits per rate for every subject.
//
// Example:
//
//	limiter := yaratelimit.NewRateLimit(yacache.NewCache(yacache.NewMemoryContainer()), 5, time.Minute)
//	ok, err := limiter.Allow(ctx, userID, "format")
func NewRateLimit[T yacache.Container](cache yacache.Cache[T], limit uint32, rate time.Duration) *RateLimit[T] {
	return &RateLimit[T]{
		cache: cache,
		limit: limit,
		rate:  rate,
		now:   time.Now,
	}
}

// Allow records a hit for (id, group) and reports whether it fits into the
// current window. Rejected hits are not counted.
func (r *RateLimit[T]) Allow(ctx context.Context, id int64, group string) (bool, yaerrors.Error) {
	now := r.now()

	window, err := r.Get(ctx, id, group)
	if err != nil {
		if !errors.Is(err, yacache.ErrKeyNotFound) {
			return false, err.Wrap("[RATE LIMIT] failed to read window")
		}

		window = &Window{Start: now}
	}

	if now.Sub(window.Start) >= r.rate {
		window = &Window{Start: now}
	}

	if window.Count >= r.limit {
		return false, nil
	}

	window.Count++

	ttl := r.rate - now.Sub(window.Start)
	if err := r.cache.Set(ctx, FormatKey(id, group), FormatValue(*window), ttl); err != nil {
		return false, err.Wrap("[RATE LIMIT] failed to store window")
	}

	return true, nil
}

// Reset forgets the window of (id, group).
func (r *RateLimit[T]) Reset(ctx context.Context, id int64, group string) yaerrors.Error {
	if err := r.cache.Delete(ctx, FormatKey(id, group)); err != nil {
		return err.Wrap("[RATE LIMIT] failed to reset window")
	}

	return nil
}

// Get returns the stored window of (id, group). A subject without hits
// yields a 404 wrapping yacache.ErrKeyNotFound.
func (r *RateLimit[T]) Get(ctx context.Context, id int64, group string) (*Window, yaerrors.Error) {
	value, err := r.cache.Get(ctx, FormatKey(id, group))
	if err != nil {
		return nil, err
	}

	return ParseValue(value)
}

// FormatKey builds the cache key of (id, group).
//
// Example:
//
//	yaratelimit.FormatKey(42, "format") // "yaratelimit:42:format"
func FormatKey(id int64, group string) string {
	return fmt.Sprintf("yaratelimit:%d:%s", id, group)
}

// FormatValue serializes a window.
func FormatValue(window Window) string {
	return fmt.Sprintf("%d,%d", window.Count, window.Start.UnixMilli())
}

// ParseValue is the inverse of FormatValue.
func ParseValue(value string) (*Window, yaerrors.Error) {
	count, start, ok := strings.Cut(value, ",")
	if !ok {
		return nil, yaerrors.FromError(http.StatusInternalServerError, ErrMalformedWindow, value)
	}

	parsedCount, err := strconv.ParseUint(count, 10, 32)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(ErrMalformedWindow, err),
			"count of "+value,
		)
	}

	parsedStart, err := strconv.ParseInt(start, 10, 64)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(ErrMalformedWindow, err),
			"start of "+value,
		)
	}

	return &Window{
		Count: uint32(parsedCount),
		Start: time.UnixMilli(parsedStart),
	}, nil
}
