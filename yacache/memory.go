package yacache

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
	"weak"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// Memory is a threadsafe, TTL-aware map-backed cache for single-process bots
// and tests. A background goroutine evicts expired entries every tick.
//
// Example:
//
//	memory := yacache.NewMemory(yacache.NewMemoryContainer(), time.Minute)
//	_ = memory.Set(ctx, "key", "v", time.Hour)
type Memory struct {
	inner  MemoryContainer
	mutex  sync.RWMutex
	done   chan struct{}
	closed bool
}

// NewMemory builds a [Memory] cache and starts the background sweeper.
//
//	data        – caller-provided map; pass NewMemoryContainer() for an empty cache
//	tickToClean – sweep interval
//
// Example:
//
//	memory := yacache.NewMemory(yacache.NewMemoryContainer(), 30*time.Second)
func NewMemory(data MemoryContainer, tickToClean time.Duration) *Memory {
	if data.Map == nil {
		data = NewMemoryContainer()
	}

	cache := Memory{
		inner: data,
		done:  make(chan struct{}),
	}

	go cleanup(weak.Make(&cache), tickToClean, cache.done)

	return &cache
}

// cleanup holds only a weak pointer so an abandoned Memory can still be
// collected without Close.
func cleanup(
	pointer weak.Pointer[Memory],
	tickToClean time.Duration,
	done <-chan struct{},
) {
	ticker := time.NewTicker(tickToClean)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			memory := pointer.Value()
			if memory == nil {
				return
			}

			memory.sweep()
		case <-done:
			return
		}
	}
}

func (m *Memory) sweep() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, value := range m.inner.Map {
		if value.isExpired() {
			delete(m.inner.Map, key)
		}
	}
}

// Raw returns the underlying MemoryContainer.
func (m *Memory) Raw() MemoryContainer {
	return m.inner
}

// Len returns the number of stored items, expired but not yet swept ones
// included.
func (m *Memory) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.inner.Map)
}

// Set implementation for Memory.
//
// Example:
//
//	_ = memory.Set(ctx, "key", "value", time.Minute)
func (m *Memory) Set(
	_ context.Context,
	key string,
	value string,
	ttl time.Duration,
) yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if ttl > 0 {
		m.inner.Map[key] = newMemoryCacheItemEX(value, time.Now().Add(ttl))
	} else {
		m.inner.Map[key] = newMemoryCacheItem(value)
	}

	return nil
}

// Get implementation for Memory. Expired items are reported as missing even
// before the sweeper removes them.
//
// Example:
//
//	value, _ := memory.Get(ctx, "key")
func (m *Memory) Get(
	_ context.Context,
	key string,
) (string, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, ok := m.inner.Map[key]
	if !ok || value.isExpired() {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrKeyNotFound,
			fmt.Sprintf("[MEMORY] failed `GET` by `%s`", key),
		)
	}

	return value.Value, nil
}

// Exists implementation for Memory.
func (m *Memory) Exists(
	_ context.Context,
	keys ...string,
) (bool, yaerrors.Error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, key := range keys {
		value, ok := m.inner.Map[key]
		if !ok || value.isExpired() {
			return false, nil
		}
	}

	return true, nil
}

// Delete implementation for Memory.
func (m *Memory) Delete(
	_ context.Context,
	key string,
) yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.inner.Map, key)

	return nil
}

// Ping fails only after Close.
func (m *Memory) Ping(_ context.Context) yaerrors.Error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.closed {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			ErrMemoryCacheClosed,
			"[MEMORY] failed `PING`",
		)
	}

	return nil
}

// Close stops the background sweeper. Calling it twice is a no-op.
func (m *Memory) Close() yaerrors.Error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.closed {
		m.closed = true

		close(m.done)
	}

	return nil
}

// memoryCacheItem keeps a value together with its TTL metadata.
type memoryCacheItem struct {
	Value     string    // user payload
	ExpiresAt time.Time // TTL deadline (ignored when Endless)
	Endless   bool      // true → infinite lifetime
}

func newMemoryCacheItem(value string) *memoryCacheItem {
	return &memoryCacheItem{
		Value:   value,
		Endless: true,
	}
}

func newMemoryCacheItemEX(
	value string,
	expiresAt time.Time,
) *memoryCacheItem {
	return &memoryCacheItem{
		Value:     value,
		ExpiresAt: expiresAt,
	}
}

func (m *memoryCacheItem) isExpired() bool {
	return !m.Endless && time.Now().After(m.ExpiresAt)
}

// MemoryContainer is the backing store of [Memory].
type MemoryContainer struct {
	Map map[string]*memoryCacheItem
}

// NewMemoryContainer allocates an empty MemoryContainer.
func NewMemoryContainer() MemoryContainer {
	return MemoryContainer{
		Map: make(map[string]*memoryCacheItem),
	}
}
