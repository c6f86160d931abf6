// Package yacache provides the key-value cache used for file metadata and
// update offsets. Two backends share one API: an in-memory map guarded by a
// RW-mutex and a Redis wrapper.
//
// # Generic design
//
// [Cache] is parameterised by the backend client type so that [Cache.Raw]
// returns the concrete driver without type assertions.
//
// # Time-to-live
//
// Redis and ttlcache handle TTL natively. The memory backend stores the absolute expiry
// in each item, hides expired items from reads and evicts them from a
// background sweeper.
//
// # Quick start (in-memory)
//
//	memory := yacache.NewCache(yacache.NewMemoryContainer())
//	ctx := context.Background()
//	_ = memory.Set(ctx, "file:AgAD", encoded, 55*time.Minute)
//	value, _ := memory.Get(ctx, "file:AgAD")
//
// # Quick start (Redis)
//
//	client := yacache.NewRedisClient("localhost", uint16(6379), "", 1, log)
//	redis := yacache.NewCache(client)
//	_ = redis.Set(ctx, "offset:123456", "42", 0)
package yacache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// Cache is a string key-value cache.
//
// Methods return yaerrors.Error. A missing key is reported by Get with
// http.StatusNotFound wrapping ErrKeyNotFound.
type Cache[T Container] interface {
	// Raw exposes the concrete client.
	//
	// Example:
	//
	// 	client := c.Raw() // *redis.Client when Redis backend is active
	Raw() T

	// Set stores key → value and applies a TTL.
	// A zero `ttl` means “store indefinitely”.
	//
	// Example:
	//
	//	_ = c.Set(ctx, "file:AgAD", encoded, 55*time.Minute)
	Set(
		ctx context.Context,
		key string,
		value string,
		ttl time.Duration,
	) yaerrors.Error

	// Get retrieves the value previously saved under key.
	//
	// Example:
	//
	//	value, err := c.Get(ctx, "file:AgAD")
	//	if errors.Is(err, yacache.ErrKeyNotFound) {
	//		// fetch and Set
	//	}
	Get(
		ctx context.Context,
		key string,
	) (string, yaerrors.Error)

	// Exists reports whether all the keys are present and not expired.
	Exists(
		ctx context.Context,
		keys ...string,
	) (bool, yaerrors.Error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(
		ctx context.Context,
		key string,
	) yaerrors.Error

	// Ping verifies that the cache service is reachable.
	Ping(ctx context.Context) yaerrors.Error

	// Close releases resources.
	Close() yaerrors.Error
}

// Container is the type set of backend clients the generic cache can wrap.
type Container interface {
	*redis.Client | MemoryContainer | TTLContainer
}

// NewCache picks the backend for the supplied container. An unsupported
// container yields a fresh memory cache with a one minute sweep interval.
//
// Example:
//
//	memory := yacache.NewCache(yacache.NewMemoryContainer())
//	ttl := yacache.NewCache(yacache.NewTTLContainer(time.Hour))
//	redis := yacache.NewCache(yacache.NewRedisClient("localhost", 6379, "", 1, log))
func NewCache[T Container](container T) Cache[T] {
	switch _container := any(container).(type) {
	case *redis.Client:
		value, _ := any(NewRedis(_container)).(Cache[T])

		return value
	case MemoryContainer:
		value, _ := any(NewMemory(_container, time.Minute)).(Cache[T])

		return value
	case TTLContainer:
		value, _ := any(NewTTL(_container)).(Cache[T])

		return value
	default:
		value, _ := any(NewMemory(NewMemoryContainer(), time.Minute)).(Cache[T])

		return value
	}
}
