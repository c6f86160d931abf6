package yacache

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// TTLContainer is the ttlcache instance behind a [TTL] cache.
type TTLContainer = *ttlcache.Cache[string, string]

// NewTTLContainer builds a ttlcache whose items expire after defaultTTL
// unless Set passes its own TTL. Reads do not extend an item's lifetime.
//
// Example:
//
//	ttl := yacache.NewCache(yacache.NewTTLContainer(time.Hour))
func NewTTLContainer(defaultTTL time.Duration) TTLContainer {
	return ttlcache.New[string, string](
		ttlcache.WithTTL[string, string](defaultTTL),
		ttlcache.WithDisableTouchOnHit[string, string](),
	)
}

// TTL is a bounded in-process cache on top of jellydator/ttlcache. Unlike
// [Memory] it evicts items at their exact deadline.
//
// Example:
//
//	cache := yacache.NewTTL(yacache.NewTTLContainer(time.Hour))
//	defer cache.Close()
type TTL struct {
	client TTLContainer
	mutex  sync.Mutex
	closed bool
}

// NewTTL wraps client and starts its expiration loop. The client must not
// be started by the caller.
func NewTTL(client TTLContainer) *TTL {
	go client.Start()

	return &TTL{client: client}
}

// Raw exposes the underlying ttlcache.
func (t *TTL) Raw() TTLContainer {
	return t.client
}

// Set stores value. A zero ttl keeps the item until it is deleted.
func (t *TTL) Set(
	_ context.Context,
	key string,
	value string,
	ttl time.Duration,
) yaerrors.Error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}

	t.client.Set(key, value, ttl)

	return nil
}

// Get retrieves the value stored under key.
func (t *TTL) Get(
	_ context.Context,
	key string,
) (string, yaerrors.Error) {
	item := t.client.Get(key)
	if item == nil {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrKeyNotFound,
			fmt.Sprintf("[TTL] failed `GET` by `%s`", key),
		)
	}

	return item.Value(), nil
}

// Exists reports whether every key is present.
func (t *TTL) Exists(
	_ context.Context,
	keys ...string,
) (bool, yaerrors.Error) {
	for _, key := range keys {
		if t.client.Get(key) == nil {
			return false, nil
		}
	}

	return true, nil
}

// Delete removes key.
func (t *TTL) Delete(
	_ context.Context,
	key string,
) yaerrors.Error {
	t.client.Delete(key)

	return nil
}

// Ping fails only after Close.
func (t *TTL) Ping(_ context.Context) yaerrors.Error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.closed {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			ErrMemoryCacheClosed,
			"[TTL] failed `PING`",
		)
	}

	return nil
}

// Close stops the expiration loop. Calling it twice is a no-op.
func (t *TTL) Close() yaerrors.Error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.closed {
		t.closed = true

		t.client.Stop()
	}

	return nil
}
