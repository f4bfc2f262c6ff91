package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

type ServerConfig struct {
	Port                   int        `mapstructure:"port" validate:"min=1,max=65535"`
	StaticDir              string     `mapstructure:"static_dir" validate:"omitempty,dir"`
	CORS                   CORSConfig `mapstructure:"cors"`
	ShutdownTimeoutSeconds int        `mapstructure:"shutdown_timeout_seconds" validate:"min=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite mysql"`

	// Path is the database file used by the sqlite driver.
	Path string `mapstructure:"path" validate:"required_if=Driver sqlite"`

	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type OpenAIConfig struct {
	APIKey           string  `mapstructure:"api_key"`
	BaseURL          string  `mapstructure:"base_url" validate:"url"`
	Model            string  `mapstructure:"model" validate:"required"`
	MaxTokens        int     `mapstructure:"max_tokens" validate:"min=1"`
	Temperature      float64 `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxRetryAttempts uint    `mapstructure:"max_retry_attempts"`
}

// RequireCredentials reports an error when the completion provider credential is absent.
func (cfg *Config) RequireCredentials() error {
	if cfg.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return nil
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	dotEnvFile string
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
		v.AddConfigPath("$HOME/.config/textsaver")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		dotEnvFile: ".env",
	}, nil
}

// BindFlags lets command line flags override configuration values.
// Each entry maps a configuration key to a flag name in flags.
func (loader *ConfigLoader) BindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag --%s is not defined", name)
		}
		if err := loader.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s flag: %w", name, err)
		}
	}
	return nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	if err := loadDotEnv(loader.dotEnvFile); err != nil {
		return nil, err
	}

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "./database.sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "textsaver")
	v.SetDefault("database.username", "user")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("openai.max_retry_attempts", 0)

	envBindings := []struct {
		key string
		env string
	}{
		{"server.port", "PORT"},
		{"server.static_dir", "STATIC_DIR"},
		{"database.driver", "DATABASE_DRIVER"},
		{"database.path", "DATABASE_PATH"},
		// Bind database password to environment variable
		{"database.password", "DB_PASSWORD"},
		// Bind OpenAI config to environment variables
		{"openai.api_key", "OPENAI_API_KEY"},
		{"openai.base_url", "OPENAI_BASE_URL"},
		{"openai.model", "OPENAI_MODEL"},
		{"openai.max_tokens", "OPENAI_MAX_TOKENS"},
		{"openai.temperature", "OPENAI_TEMPERATURE"},
		{"openai.max_retry_attempts", "OPENAI_MAX_RETRY_ATTEMPTS"},
	}
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", b.env, err)
		}
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

// loadDotEnv exports variables from an optional dotenv file.
// Variables already present in the environment win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("godotenv.Load(%s) > %w", path, err)
	}
	return nil
}
