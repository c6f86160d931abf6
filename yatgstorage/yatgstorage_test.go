package yatgstorage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgstorage"
)

const botID = 123456

func newMockDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	// every pooled connection would get its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	poolDB, err := gorm.Open(
		gorm.Dialector(
			sqlite.Dialector{
				Conn:       sqlDB,
				DriverName: "sqlite",
			},
		), &gorm.Config{})
	require.NoError(t, err)

	return poolDB
}

func testOffsetContract(t *testing.T, storage yatgstorage.OffsetStorage) {
	t.Helper()

	ctx := context.Background()

	t.Run("missing offset is not found", func(t *testing.T) {
		offset, found, err := storage.GetOffset(ctx, botID)
		require.Nil(t, err)

		assert.False(t, found)
		assert.Zero(t, offset)
	})

	t.Run("set then get", func(t *testing.T) {
		require.Nil(t, storage.SetOffset(ctx, botID, 42))

		offset, found, err := storage.GetOffset(ctx, botID)
		require.Nil(t, err)

		assert.True(t, found)
		assert.Equal(t, int64(42), offset)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.Nil(t, storage.SetOffset(ctx, botID, 43))

		offset, _, err := storage.GetOffset(ctx, botID)
		require.Nil(t, err)

		assert.Equal(t, int64(43), offset)
	})

	t.Run("bots are independent", func(t *testing.T) {
		_, found, err := storage.GetOffset(ctx, botID+1)
		require.Nil(t, err)

		assert.False(t, found)
	})
}

func TestCacheStorage_Memory(t *testing.T) {
	t.Parallel()

	cache := yacache.NewCache(yacache.NewMemoryContainer())
	defer cache.Close()

	testOffsetContract(t, yatgstorage.NewCacheStorage(cache, yalogger.NewDefaultLogger()))
}

func TestCacheStorage_TTL(t *testing.T) {
	t.Parallel()

	cache := yacache.NewCache(yacache.NewTTLContainer(time.Hour))
	defer cache.Close()

	testOffsetContract(t, yatgstorage.NewCacheStorage(cache, nil))
}

func TestCacheStorage_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	testOffsetContract(t, yatgstorage.NewCacheStorage(yacache.NewCache(client), nil))

	value, err := mr.Get("yatgstorage:offset:123456")
	require.NoError(t, err)

	assert.Equal(t, "43", value)
}

func TestCacheStorage_CorruptValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	cache := yacache.NewCache(yacache.NewMemoryContainer())
	defer cache.Close()

	require.Nil(t, cache.Set(ctx, "yatgstorage:offset:123456", "not a number", 0))

	_, _, err := yatgstorage.NewCacheStorage(cache, nil).GetOffset(ctx, botID)
	require.NotNil(t, err)

	assert.ErrorIs(t, err, yatgstorage.ErrFailedToParseOffset)
}

func TestGormStorage_Works(t *testing.T) {
	t.Parallel()

	storage, err := yatgstorage.NewGormStorage(newMockDB(t), nil)
	require.Nil(t, err)

	testOffsetContract(t, storage)
}

func TestGormStorage_KeepsOneRowPerBot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	db := newMockDB(t)

	storage, err := yatgstorage.NewGormStorage(db, nil)
	require.Nil(t, err)

	for offset := range int64(5) {
		require.Nil(t, storage.SetOffset(ctx, botID, offset))
	}

	var count int64

	require.NoError(t, db.Model(&yatgstorage.UpdateOffset{}).Count(&count).Error)

	assert.Equal(t, int64(1), count)
}
