package yatgstorage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// Cache is an OffsetStorage on top of a yacache backend. Offsets never
// expire.
type Cache[T yacache.Container] struct {
	cache yacache.Cache[T]
	log   yalogger.Logger
}

// NewCacheStorage wraps cache.
//
// Example:
//
//	storage := yatgstorage.NewCacheStorage(yacache.NewCache(yacache.NewMemoryContainer()), log)
func NewCacheStorage[T yacache.Container](cache yacache.Cache[T], log yalogger.Logger) *Cache[T] {
	if log == nil {
		log = yalogger.NewDefaultLogger()
	}

	return &Cache[T]{
		cache: cache,
		log:   log,
	}
}

// GetOffset reads the offset. A missing key is not an error.
func (c *Cache[T]) GetOffset(ctx context.Context, botID int64) (int64, bool, yaerrors.Error) {
	key := offsetKey(botID)

	log := baseLog(c.log, "Fetching update offset", botID).WithField(LoggerOffsetKey, key)

	value, err := c.cache.Get(ctx, key)
	if errors.Is(err, yacache.ErrKeyNotFound) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, err.WrapWithLog(ErrFailedToGetOffset.Error(), log)
	}

	offset, parseErr := strconv.ParseInt(value, 10, 64)
	if parseErr != nil {
		return 0, false, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			errors.Join(parseErr, ErrFailedToParseOffset),
			fmt.Sprintf("stored value %q", value),
			log,
		)
	}

	log.Debugf("Fetched update offset %d", offset)

	return offset, true, nil
}

// SetOffset writes the offset without a TTL.
func (c *Cache[T]) SetOffset(ctx context.Context, botID int64, offset int64) yaerrors.Error {
	key := offsetKey(botID)

	log := baseLog(c.log, "Setting update offset", botID).WithField(LoggerOffsetKey, key)

	if err := c.cache.Set(ctx, key, strconv.FormatInt(offset, 10), 0); err != nil {
		return err.WrapWithLog(ErrFailedToSetOffset.Error(), log)
	}

	return nil
}

// offsetKey forms the cache key of a bot offset.
//
// Example:
//
//	k := offsetKey(42) // "yatgstorage:offset:42"
func offsetKey(botID int64) string {
	return fmt.Sprintf("yatgstorage:offset:%d", botID)
}
