package common

import (
	"time"

	"github.com/spf13/viper"
)

// Config api configuration
type Config struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

// InitConfig initialize api configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("api")
	err := subv.Unmarshal(&config)
	return config, err
}
