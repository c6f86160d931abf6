package commands

import (
	"time"

	"github.com/YaCodeDev/GoYaTgBotAPI/config"
	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
)

// Storage kinds.
const (
	StorageMemory = "memory"
	StorageTTL    = "ttl"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Redis struct {
	Host     string `toml:"host"     yaml:"host"     default:"localhost"`
	Port     uint16 `toml:"port"     yaml:"port"     default:"6379"`
	Password string `toml:"password" yaml:"password" default:""`
	DB       int    `toml:"db"       yaml:"db"       default:"0"`
}

type Storage struct {
	// Kind is one of memory, ttl, redis or sqlite.
	Kind     string        `toml:"kind"      yaml:"kind"      default:"memory"`
	Path     string        `toml:"path"      yaml:"path"      default:"yatgecho.db"`
	StateTTL time.Duration `toml:"state_ttl" yaml:"state_ttl" default:"1h"`
	Redis    Redis         `toml:"redis"     yaml:"redis"`
}

// Config of yatgecho. Nested keys map to STORAGE_KIND, STORAGE_REDIS_HOST
// and so on.
type Config struct {
	Token        string        `toml:"token"         yaml:"token"         env:"BOT_TOKEN"`
	APIURL       string        `toml:"api_url"       yaml:"api_url"       env:"BOT_API_URL" default:"https://api.telegram.org"`
	Proxy        string        `toml:"proxy"         yaml:"proxy"         env:"BOT_PROXY"   default:""`
	Timeout      time.Duration `toml:"timeout"       yaml:"timeout"       default:"40s"`
	PollTimeout  time.Duration `toml:"poll_timeout"  yaml:"poll_timeout"  default:"30s"`
	LogLevel     string        `toml:"log_level"     yaml:"log_level"     default:"info"`
	Locales      string        `toml:"locales"       yaml:"locales"       default:""`
	DefaultLang  string        `toml:"default_lang"  yaml:"default_lang"  default:"en"`
	QueueWorkers uint          `toml:"queue_workers" yaml:"queue_workers" default:"4"`
	FormatLimit  uint32        `toml:"format_limit"  yaml:"format_limit"  default:"10"` // per user and minute
	Storage      Storage       `toml:"storage"       yaml:"storage"`
}

func loadConfig(path string, log yalogger.Logger) (Config, yaerrors.Error) {
	var cfg Config

	if path == "" {
		if err := config.LoadConfigStructFromEnvHandlingError(&cfg, log); err != nil {
			return Config{}, err.Wrap("failed to load config from env")
		}

		return cfg, nil
	}

	if err := config.LoadConfigFile(path, &cfg, log); err != nil {
		return Config{}, err.Wrap("failed to load config file")
	}

	return cfg, nil
}

func (c Config) clientConfig() yatgclient.Config {
	return yatgclient.Config{
		Token:   c.Token,
		APIURL:  c.APIURL,
		Timeout: c.Timeout,
		Proxy:   c.Proxy,
	}
}

func newLogger(level string) yalogger.Logger {
	parsed := yalogger.InfoLevel

	if err := parsed.Unmarshal(level); err != nil {
		parsed = yalogger.InfoLevel
	}

	return yalogger.NewBaseLogger(&yalogger.Config{
		BaseLoggerType:  yalogger.Logrus,
		Level:           parsed,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}).NewLogger()
}
