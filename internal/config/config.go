// Package config loads application settings that live outside the store:
// where the store is, logging, and backup behaviour.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/mixcheck/internal/constants"
)

const (
	FileName  = "config.yaml"
	EnvPrefix = "MIXCHECK"
)

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required|in:debug,info,warn,error"`
}

type BackupConfig struct {
	// Auto takes a snapshot before destructive commands such as history clear
	Auto bool `mapstructure:"auto"`
}

type Config struct {
	Path   string       `mapstructure:"-"`
	Store  string       `mapstructure:"store" validate:"required"`
	Debug  bool         `mapstructure:"debug"`
	Log    LogConfig    `mapstructure:"log"`
	Backup BackupConfig `mapstructure:"backup"`
}

// DefaultPath is config.yaml in the directory of the default store.
func DefaultPath() string {
	return filepath.Join(filepath.Dir(ExpandHome(constants.DefaultConfigPath)), FileName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Load reads the config file at path if it exists, then environment
// variables prefixed with MIXCHECK_ (a .env file in the working directory is
// loaded first). A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store", constants.DefaultConfigPath)
	v.SetDefault("debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("backup.auto", true)

	// AutomaticEnv only covers keys viper already knows about
	for _, key := range []string{"store", "debug", "log.level", "backup.auto"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Path = path
	conf.Log.Level = strings.ToLower(conf.Log.Level)

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) Validate() error {
	for _, section := range []interface{}{c, &c.Log} {
		v := validate.Struct(section)
		if !v.Validate() {
			return fmt.Errorf("invalid config: %s", v.Errors.One())
		}
	}
	return nil
}

// StorePath returns the store location with ~ expanded. Connection strings
// are returned unchanged.
func (c *Config) StorePath() string {
	return ExpandHome(c.Store)
}

// Dir is the directory holding logs, backups and the lockfile.
func (c *Config) Dir() string {
	if c.Path != "" {
		return filepath.Dir(c.Path)
	}
	return filepath.Dir(DefaultPath())
}

// Write saves the current values to path as YAML, creating the directory.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("store", c.Store)
	v.Set("debug", c.Debug)
	v.Set("log.level", c.Log.Level)
	v.Set("backup.auto", c.Backup.Auto)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
