package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode             string        `mapstructure:"mode"`
	Port             int           `mapstructure:"port"`
	Secret           string        `mapstructure:"secret"`
	ReadLimit        int64         `mapstructure:"read_limit"`
	ReadTimeout      time.Duration `mapstructure:"read_timeout"`
	SnapshotPath     string        `mapstructure:"snapshot_path"`
	SnapshotInterval time.Duration `mapstructure:"snapshot_interval"`
	ChatRateLimit    int           `mapstructure:"chat_rate_limit"`
	ChatRateWindow   time.Duration `mapstructure:"chat_rate_window"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("read_limit", 32768)
	// read_timeout 0 disables the liveness deadline; clients still get
	// ping/pong on demand.
	v.SetDefault("read_timeout", "0s")
	v.SetDefault("snapshot_path", "game_data.json")
	v.SetDefault("snapshot_interval", "30s")
	v.SetDefault("chat_rate_limit", 10)
	v.SetDefault("chat_rate_window", "10s")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
