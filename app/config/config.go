package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config app configuration
type Config struct {
	// RetentionDays - feed activity older than this is swept nightly
	RetentionDays int `mapstructure:"retentionDays"`
	// DedupTTL bounds the redelivery window within which duplicate
	// trigger deliveries are suppressed
	DedupTTL time.Duration `mapstructure:"dedupTTL"`
	// DedupEnabled toggles delivery de-duplication via the cache
	DedupEnabled bool `mapstructure:"dedupEnabled"`
}

// InitConfig initialize app configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("app")
	if err := subv.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.RetentionDays == 0 {
		config.RetentionDays = 14
	}
	if config.DedupTTL == 0 {
		config.DedupTTL = 24 * time.Hour
	}
	return config, nil
}
