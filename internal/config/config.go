package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port               int      `mapstructure:"port"`
	DatabasePath       string   `mapstructure:"database_path"`
	PostgresDSN        string   `mapstructure:"postgres_dsn"` // empty = SQLite only
	LogLevel           string   `mapstructure:"log_level"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RequestTimeoutSec  int      `mapstructure:"request_timeout_sec"`  // HTTP read/write; 0 = server default
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec"` // Graceful shutdown wait
	MaxBodyBytes       int      `mapstructure:"max_body_bytes"`       // Max request body size; 0 = default 512KB
	GeminiAPIKey       string   `mapstructure:"gemini_api_key"`       // empty = AI scan disabled
	GeminiModel        string   `mapstructure:"gemini_model"`
	OTLPEndpoint       string   `mapstructure:"otlp_endpoint"`        // empty = tracing disabled
	TraceSamplingRate  float64  `mapstructure:"trace_sampling_rate"`
	BackupWindowDays   int      `mapstructure:"backup_window_days"` // trailing window for backup success rate
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/inventra/")
	viper.AddConfigPath("$HOME/.inventra")
	viper.AddConfigPath(".")

	// Defaults
	viper.SetDefault("port", 8080)
	viper.SetDefault("database_path", "./inventra.db")
	viper.SetDefault("postgres_dsn", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("allowed_origins", []string{"*"})
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("shutdown_timeout_sec", 15)
	viper.SetDefault("max_body_bytes", 512*1024)
	viper.SetDefault("gemini_api_key", "")
	viper.SetDefault("gemini_model", "gemini-2.5-flash-preview-09-2025")
	viper.SetDefault("otlp_endpoint", "")
	viper.SetDefault("trace_sampling_rate", 1.0)
	viper.SetDefault("backup_window_days", 30)

	// Environment variables
	viper.SetEnvPrefix("INVENTRA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
