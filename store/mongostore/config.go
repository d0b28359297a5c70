package mongostore

import (
	"github.com/spf13/viper"
)

// Config configuration for the document database
type Config struct {
	Host   string `mapstructure:"host"`
	DBName string `mapstructure:"dbName"`
}

// InitConfig initialize document database configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("mongodatabase")
	err := subv.Unmarshal(&config)
	return config, err
}
