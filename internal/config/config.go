package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/localsight/localsight/internal/usage"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Scrape   ScrapeConfig   `yaml:"scrape" mapstructure:"scrape"`
	Places   PlacesConfig   `yaml:"places" mapstructure:"places"`
	Usage    usage.Config   `yaml:"usage" mapstructure:"usage"`
	Identity IdentityConfig `yaml:"identity" mapstructure:"identity"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ScrapeConfig configures the contact-scraping pipeline.
type ScrapeConfig struct {
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxConcurrent   int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec" mapstructure:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	UserAgent       string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// PlacesConfig configures place analytics.
type PlacesConfig struct {
	DensityNeighbors int `yaml:"density_neighbors" mapstructure:"density_neighbors"`
}

// IdentityConfig maps pre-shared API tokens to user IDs.
type IdentityConfig struct {
	Tokens map[string]string `yaml:"tokens" mapstructure:"tokens"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LOCALSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scrape.timeout_secs", 10)
	v.SetDefault("scrape.max_concurrent", 0)
	v.SetDefault("scrape.rate_limit_per_sec", 0)
	v.SetDefault("scrape.rate_limit_burst", 1)
	v.SetDefault("places.density_neighbors", 3)
	v.SetDefault("usage.driver", "sqlite")
	v.SetDefault("usage.dsn", "localsight.db")
	v.SetDefault("usage.daily_limit", 100)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
