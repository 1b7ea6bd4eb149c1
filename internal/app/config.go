package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

const (
	defaultDSN         = "./data"
	defaultKeyPrefix   = "school"
	defaultLockTimeout = "5s"
)

type Config struct {
	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
		KeyPrefix     string `toml:"key_prefix"`
		LockTimeout   string `toml:"lock_timeout"`
	} `toml:"database"`

	Display struct {
		Color  bool `toml:"color"`
		Banner bool `toml:"banner"`
	} `toml:"display"`

	Metrics struct {
		Listen string `toml:"listen"`
	} `toml:"metrics"`

	Log struct {
		Debug bool `toml:"debug"`
	} `toml:"log"`

	LockTimeout time.Duration `toml:"-"` // parsed from Database.LockTimeout
}

// DefaultConfig is used as is when no config file exists, and as the base
// that a config file overrides.
func DefaultConfig() *Config {
	var config Config
	config.Database.DSN = defaultDSN
	config.Database.KeyPrefix = defaultKeyPrefix
	config.Database.LockTimeout = defaultLockTimeout
	config.Display.Color = true
	config.Display.Banner = true
	config.LockTimeout = 5 * time.Second
	return &config
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if err := config.prepare(); err != nil {
		return nil, err
	}

	logger.Debug.Printf("Loaded database config: %+v", config.Database)

	return config, nil
}

// prepare fills blanks with defaults and parses derived values.
func (c *Config) prepare() error {
	if c.Database.DSN == "" {
		c.Database.DSN = defaultDSN
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = defaultKeyPrefix
	}
	if c.Database.LockTimeout == "" {
		c.Database.LockTimeout = defaultLockTimeout
	}

	timeout, err := time.ParseDuration(c.Database.LockTimeout)
	if err != nil {
		return fmt.Errorf("invalid database.lock_timeout %q: %w", c.Database.LockTimeout, err)
	}
	if timeout < 0 {
		return fmt.Errorf("database.lock_timeout must not be negative, got %s", timeout)
	}
	c.LockTimeout = timeout

	return nil
}
