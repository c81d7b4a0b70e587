package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidTimeLimit is returned when the configured per-question limit is not positive.
var ErrInvalidTimeLimit = errors.New("time limit must be positive")

// Config holds application configuration loaded from files, environment
// variables and command-line flags.
type Config struct {
	Env           string        `mapstructure:"env"`            // local or production
	TimeLimit     time.Duration `mapstructure:"time_limit"`     // countdown per question
	QuestionsPath string        `mapstructure:"questions_path"` // question set file; empty uses the embedded set
	Log           Log           `mapstructure:"log"`
}

// Log contains logging configuration.
type Log struct {
	File       string `mapstructure:"file"`        // log file path; empty uses the default state dir
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after this many megabytes
	MaxBackups int    `mapstructure:"max_backups"` // rotated files to keep
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"questions":  "questions_path",
	"time-limit": "time_limit",
	"log-level":  "log.level",
}

// Load reads configuration. Priority, highest first: flags, QUIZBIT_*
// environment variables (a .env file is honoured), configFile or a
// discovered config.yaml, defaults.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("env", "local")
	v.SetDefault("time_limit", "20s")
	v.SetDefault("questions_path", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetEnvPrefix("QUIZBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeLimit, cfg.TimeLimit)
	}
	return &cfg, nil
}

// configDir returns $XDG_CONFIG_HOME/quizbit, falling back to ~/.config/quizbit.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quizbit"), nil
}
