// Package config loads pager settings from an optional file and PAGER_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/deltegui/pager/pagination"
	"github.com/deltegui/pager/persistence"
	"github.com/deltegui/pager/validator"
)

const EnvPrefix = "PAGER"

type Pagination struct {
	ItemsPerPage int `mapstructure:"items_per_page" validate:"ne=0,min=-1"`
	PagesInRange int `mapstructure:"pages_in_range" validate:"min=0"`
}

// Map returns the settings in the shape pagination.NewFromConfig reads.
func (p Pagination) Map() map[string]any {
	return map[string]any{
		pagination.KeyItemsPerPage: p.ItemsPerPage,
		pagination.KeyPagesInRange: p.PagesInRange,
	}
}

type Log struct {
	Level string `mapstructure:"level"`
}

type Server struct {
	Address         string `mapstructure:"address" validate:"required"`
	MaxItemsPerPage int    `mapstructure:"max_items_per_page" validate:"min=1"`
}

type Database struct {
	persistence.Configuration `mapstructure:",squash"`
	Query                     string `mapstructure:"query"`
	OrderBy                   string `mapstructure:"order_by"`
}

type Config struct {
	Pagination Pagination `mapstructure:"pagination"`
	Log        Log        `mapstructure:"log"`
	Server     Server     `mapstructure:"server"`
	Database   Database   `mapstructure:"database"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pagination.items_per_page", pagination.DefaultItemsPerPage)
	v.SetDefault("pagination.pages_in_range", pagination.DefaultPagesInRange)
	v.SetDefault("log.level", "info")
	v.SetDefault("server.address", "localhost:8080")
	v.SetDefault("server.max_items_per_page", 1000)
	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.query", "")
	v.SetDefault("database.order_by", "")
}

// Load reads the configuration. file may be empty, in which case only
// defaults and environment variables are used.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config file '%s': %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (cfg Config) Validate() error {
	errs, err := validator.NewPlayground().Validate(cfg)
	if err != nil {
		return err
	}
	if err := validator.Errors(errs); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
