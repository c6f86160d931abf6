// Package yatgstorage persists the getUpdates offset of a bot, so a
// restarted poller resumes after the last handled update instead of
// replaying the ones Telegram still holds.
//
// Two backends implement OffsetStorage:
//
//   - Cache keeps the offset in any yacache backend under
//     yatgstorage:offset:<bot_id>;
//   - Gorm keeps one UpdateOffset row per bot and upserts it.
//
// Example usage:
//
//	storage := yatgstorage.NewCacheStorage(yacache.NewCache(redisClient), log)
//	offset, found, err := storage.GetOffset(ctx, client.BotID())
package yatgstorage

import (
	"context"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// Structured-logging keys.
const (
	LoggerBotID     = "bot_id"
	LoggerOffsetKey = "offset_key"
)

// OffsetStorage stores the next update offset of each bot. Implementations
// are safe for concurrent use.
type OffsetStorage interface {
	// GetOffset returns the stored offset. found is false when nothing was
	// stored for botID yet.
	GetOffset(ctx context.Context, botID int64) (offset int64, found bool, err yaerrors.Error)

	// SetOffset replaces the stored offset.
	SetOffset(ctx context.Context, botID int64, offset int64) yaerrors.Error
}

func baseLog(log yalogger.Logger, entry string, botID int64) yalogger.Logger {
	log = log.WithField(LoggerBotID, botID)

	log.Debugf("%s", entry)

	return log
}
