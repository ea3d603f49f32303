package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	cfgName   = "application"
	envPrefix = "FOOD"
)

var drivers = []string{"mysql", "pgx", "sqlite3"}

type Config struct {
	Owner    string         `mapstructure:"owner"`
	HTTP     ServerConfig   `mapstructure:"http"`
	GRPC     ServerConfig   `mapstructure:"grpc"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig selects the event journal. An empty Driver runs the engine
// in memory only.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig enables request idempotency when Addr is set.
type RedisConfig struct {
	Addr           string        `mapstructure:"addr"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

type JournalConfig struct {
	BatchSize int `mapstructure:"batch_size"`
	QueueSize int `mapstructure:"queue_size"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"owner":              "owner",
	"http-addr":          "http.addr",
	"grpc-addr":          "grpc.addr",
	"db-driver":          "database.driver",
	"db-dsn":             "database.dsn",
	"redis-addr":         "redis.addr",
	"idempotency-ttl":    "redis.idempotency_ttl",
	"journal-batch-size": "journal.batch_size",
	"journal-queue-size": "journal.queue_size",
	"log-level":          "log.level",
}

// New returns a viper instance with defaults and FOOD_* environment
// variables wired in, e.g. FOOD_DATABASE_DSN for database.dsn.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(cfgName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("owner", "admin")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("grpc.addr", ":50051")
	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.idempotency_ttl", "24h")
	v.SetDefault("journal.batch_size", 100)
	v.SetDefault("journal.queue_size", 10000)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// AddFlags registers the server flags on flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a configuration file (default ./application.yml)")
	flags.String("owner", "admin", "identity of the initial administrator")
	flags.String("http-addr", ":8080", "HTTP listen address")
	flags.String("grpc-addr", ":50051", "gRPC listen address")
	flags.String("db-driver", "", "journal database driver: mysql, pgx or sqlite3")
	flags.String("db-dsn", "", "journal database DSN")
	flags.String("redis-addr", "", "Redis address for request idempotency")
	flags.Duration("idempotency-ttl", 24*time.Hour, "how long a request id blocks a retry")
	flags.Int("journal-batch-size", 100, "maximum events stored per journal transaction")
	flags.Int("journal-queue-size", 10000, "capacity of the journal queue")
	flags.String("log-level", "info", "log level")
}

// BindFlags lets explicitly set flags override every other source.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if flag := flags.Lookup("config"); flag != nil && flag.Value.String() != "" {
		v.SetConfigFile(flag.Value.String())
	}
	return nil
}

// Load reads the configuration file if there is one and decodes the merged
// settings. A missing application.yml is not an error; a missing file given
// with --config is.
func Load(v *viper.Viper) mo.Result[Config] {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return mo.Err[Config](fmt.Errorf("read config: %w", err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return mo.Err[Config](fmt.Errorf("decode config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return mo.Err[Config](err)
	}
	return mo.Ok(cfg)
}

func (c Config) Validate() error {
	if c.Owner == "" {
		return errors.New("owner must not be empty")
	}
	if c.Redis.Addr != "" && c.Redis.IdempotencyTTL <= 0 {
		return errors.New("redis.idempotency_ttl must be positive")
	}
	if c.Database.Driver != "" {
		if !lo.Contains(drivers, c.Database.Driver) {
			return fmt.Errorf("unsupported database driver %q, want one of %s", c.Database.Driver, strings.Join(drivers, ", "))
		}
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required when database.driver is set")
		}
		if c.Journal.BatchSize < 1 {
			return errors.New("journal.batch_size must be at least 1")
		}
		if c.Journal.QueueSize < 1 {
			return errors.New("journal.queue_size must be at least 1")
		}
	}
	return nil
}

// JournalEnabled reports whether committed events are persisted.
func (c Config) JournalEnabled() bool {
	return c.Database.Driver != ""
}
