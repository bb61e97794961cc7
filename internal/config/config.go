// Package config loads subtrack settings from the config file, .env and the
// environment, and builds the process logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SUBTRACK"

	DriverKey      = "storage.driver"
	TOMLPathKey    = "storage.path"
	SQLitePathKey  = "storage.sqlite_path"
	RedisURLKey    = "storage.redis_url"
	RedisPrefixKey = "storage.redis_prefix"
	PostgresDSNKey = "storage.postgres_dsn"
	SessionPathKey = "session.path"
	CurrencyKey    = "display.currency"
	LogLevelKey    = "log.level"

	configDir  = ".subtrack"
	configFile = "config.toml"
)

type Driver string

const (
	DriverTOML     Driver = "toml"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Load reads path, or ~/.subtrack/config.toml when path is empty. A missing
// default file is not an error; a missing explicit file is. Environment
// variables such as SUBTRACK_STORAGE_DRIVER override file values.
func Load(path string) (*viper.Viper, error) {
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	base := filepath.Join(homeDir, configDir)

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(DriverKey, string(DriverTOML))
	v.SetDefault(TOMLPathKey, filepath.Join(base, "subscriptions.toml"))
	v.SetDefault(SQLitePathKey, filepath.Join(base, "subtrack.db"))
	v.SetDefault(RedisURLKey, "redis://localhost:6379/0")
	v.SetDefault(RedisPrefixKey, "subtrack:")
	v.SetDefault(PostgresDSNKey, "")
	v.SetDefault(SessionPathKey, filepath.Join(base, "session.toml"))
	v.SetDefault(CurrencyKey, "GBP")
	v.SetDefault(LogLevelKey, "warn")

	explicit := path != ""
	if !explicit {
		path = filepath.Join(base, configFile)
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if _, err := StorageDriver(v); err != nil {
		return nil, err
	}

	return v, nil
}

func StorageDriver(v *viper.Viper) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(v.GetString(DriverKey)))); d {
	case DriverTOML, DriverSQLite, DriverRedis, DriverPostgres:
		return d, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDriver, d)
	}
}
