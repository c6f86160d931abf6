package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/YaCodeDev/GoYaTgBotAPI/yacache"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yafsm"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaratelimit"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/localizer"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgbot/messagequeue"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgpoller"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgstorage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll for updates and answer them",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLog := yalogger.NewDefaultLogger()

	cfg, err := loadConfig(configPath, bootLog)
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel)

	bot, closeBackends, err := newBot(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackends()

	log.Infof("Bot @%s started", bot.Dispatcher().BotUsername)

	if err := bot.Run(ctx); err != nil {
		return err
	}

	log.Infof("Bot stopped")

	return nil
}

// backends groups what the storage kind decides.
type backends struct {
	files   yatgclient.FileCache
	offsets yatgstorage.OffsetStorage
	fsm     yafsm.FSM
	limiter yatgbot.Limiter
	close   func()
}

func cacheBackends[T yacache.Container](cache yacache.Cache[T], cfg Config, log yalogger.Logger) backends {
	return backends{
		files:   cache,
		offsets: yatgstorage.NewCacheStorage(cache, log),
		fsm:     yafsm.NewStorage(cache, cfg.Storage.StateTTL),
		limiter: yaratelimit.NewRateLimit(cache, cfg.FormatLimit, time.Minute),
		close: func() {
			if err := cache.Close(); err != nil {
				log.Warnf("Failed to close cache: %v", err)
			}
		},
	}
}

func newBackends(cfg Config, log yalogger.Logger) (backends, yaerrors.Error) {
	switch cfg.Storage.Kind {
	case StorageMemory:
		return cacheBackends(yacache.NewCache(yacache.NewMemoryContainer()), cfg, log), nil
	case StorageTTL:
		return cacheBackends(yacache.NewCache(yacache.NewTTLContainer(cfg.Storage.StateTTL)), cfg, log), nil
	case StorageRedis:
		redis := cfg.Storage.Redis
		client := yacache.NewRedisClient(redis.Host, redis.Port, redis.Password, redis.DB, log)

		return cacheBackends(yacache.NewCache(client), cfg, log), nil
	case StorageSQLite:
		return sqliteBackends(cfg, log)
	default:
		return backends{}, yaerrors.FromString(
			http.StatusBadRequest,
			fmt.Sprintf("unknown storage kind %q", cfg.Storage.Kind),
		)
	}
}

// sqliteBackends keeps offsets in the database. Conversation state stays in
// memory.
func sqliteBackends(cfg Config, log yalogger.Logger) (backends, yaerrors.Error) {
	sqlDB, err := sql.Open("sqlite", cfg.Storage.Path)
	if err != nil {
		return backends{}, yaerrors.FromError(http.StatusInternalServerError, err, "failed to open "+cfg.Storage.Path)
	}

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", Conn: sqlDB}, &gorm.Config{})
	if err != nil {
		_ = sqlDB.Close()

		return backends{}, yaerrors.FromError(http.StatusInternalServerError, err, "failed to open gorm")
	}

	offsets, yaErr := yatgstorage.NewGormStorage(db, log)
	if yaErr != nil {
		_ = sqlDB.Close()

		return backends{}, yaErr
	}

	memory := yacache.NewCache(yacache.NewMemoryContainer())

	return backends{
		files:   memory,
		offsets: offsets,
		fsm:     yafsm.NewStorage(memory, cfg.Storage.StateTTL),
		limiter: yaratelimit.NewRateLimit(memory, cfg.FormatLimit, time.Minute),
		close: func() {
			_ = memory.Close()

			if err := sqlDB.Close(); err != nil {
				log.Warnf("Failed to close database: %v", err)
			}
		},
	}, nil
}

func newLocalizer(cfg Config) (*localizer.Localizer, yaerrors.Error) {
	var fsys fs.FS

	if cfg.Locales != "" {
		fsys = os.DirFS(cfg.Locales)
	} else {
		sub, err := fs.Sub(embeddedLocales, "locales")
		if err != nil {
			return nil, yaerrors.FromError(http.StatusInternalServerError, err, "embedded locales")
		}

		fsys = sub
	}

	return localizer.NewLocalizer(fsys, cfg.DefaultLang)
}

func newBot(ctx context.Context, cfg Config, log yalogger.Logger) (*yatgbot.Bot, func(), yaerrors.Error) {
	storage, err := newBackends(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	client, err := yatgclient.NewClientFromConfig(cfg.clientConfig(), storage.files, log)
	if err != nil {
		storage.close()

		return nil, nil, err
	}

	locales, err := newLocalizer(cfg)
	if err != nil {
		storage.close()

		return nil, nil, err
	}

	queue := messagequeue.NewDispatcher(ctx, messagequeue.NewClientSender(client), &messagequeue.Options{
		Workers: cfg.QueueWorkers,
		Log:     log,
	})

	bot, err := yatgbot.New(ctx, yatgbot.Options{
		Client:    client,
		Router:    newRouter(storage.limiter),
		FSM:       storage.fsm,
		Localizer: locales,
		Queue:     queue,
		Poller: &yatgpoller.Options{
			Timeout: cfg.PollTimeout,
			Storage: storage.offsets,
			Log:     log,
		},
		Log: log,
	})
	if err != nil {
		storage.close()

		return nil, nil, err
	}

	return bot, storage.close, nil
}
