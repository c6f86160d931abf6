package yatgstorage

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

// UpdateOffset is the database model holding the next offset of one bot.
type UpdateOffset struct {
	BotID     int64     `gorm:"primaryKey;autoIncrement:false"`
	Offset    int64     `gorm:"column:next_offset"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Column names of UpdateOffset.
const (
	FieldBotID     = "bot_id"
	FieldOffset    = "next_offset"
	FieldUpdatedAt = "updated_at"
)

// Gorm is an OffsetStorage on top of a gorm connection.
type Gorm struct {
	poolDB *gorm.DB
	log    yalogger.Logger
}

// NewGormStorage migrates the UpdateOffset table and returns the storage.
//
// Example:
//
//	db, _ := gorm.Open(sqlite.Open("bot.db"), &gorm.Config{})
//	storage, err := yatgstorage.NewGormStorage(db, log)
func NewGormStorage(poolDB *gorm.DB, log yalogger.Logger) (*Gorm, yaerrors.Error) {
	if log == nil {
		log = yalogger.NewDefaultLogger()
	}

	if err := poolDB.AutoMigrate(&UpdateOffset{}); err != nil {
		return nil, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToMigrate),
			"failed to make auto migrate",
			log,
		)
	}

	return &Gorm{poolDB: poolDB, log: log}, nil
}

// GetOffset selects the row of botID. A missing row is not an error.
func (g *Gorm) GetOffset(ctx context.Context, botID int64) (int64, bool, yaerrors.Error) {
	log := baseLog(g.log, "Fetching update offset", botID)

	var row UpdateOffset

	err := g.poolDB.WithContext(ctx).
		Model(&UpdateOffset{}).
		Where(&UpdateOffset{BotID: botID}).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToGetOffset),
			"failed to fetch update offset",
			log,
		)
	}

	return row.Offset, true, nil
}

// SetOffset inserts or updates the row of botID.
func (g *Gorm) SetOffset(ctx context.Context, botID int64, offset int64) yaerrors.Error {
	log := baseLog(g.log, "Setting update offset", botID)

	if err := g.poolDB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: FieldBotID}},
			DoUpdates: clause.AssignmentColumns([]string{FieldOffset, FieldUpdatedAt}),
		}).
		Create(&UpdateOffset{
			BotID:  botID,
			Offset: offset,
		}).Error; err != nil {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToSetOffset),
			"failed to upsert update offset",
			log,
		)
	}

	return nil
}
