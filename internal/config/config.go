package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Exports  ExportsConfig  `mapstructure:"exports"`
	Backups  BackupsConfig  `mapstructure:"backups"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=mysql sqlite3"`
	// Path is the database file used by the sqlite3 driver.
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	Host            string            `mapstructure:"host" validate:"required_if=Driver mysql"`
	Port            int               `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Database        string            `mapstructure:"database" validate:"required_if=Driver mysql"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"min=1"`
}

type AudioConfig struct {
	Directory string `mapstructure:"directory" validate:"required,dir"`
}

type ExportsConfig struct {
	Directory string `mapstructure:"directory" validate:"required,dir"`
}

type BackupsConfig struct {
	Directory string `mapstructure:"directory" validate:"required,dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dearbones")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", filepath.Join("data", "dearbones.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "dearbones")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("audio.directory", filepath.Join("data", "audio"))
	v.SetDefault("exports.directory", "exports")
	v.SetDefault("backups.directory", "backups")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("database.path", "DEARBONES_DB_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind DEARBONES_DB_PATH environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
