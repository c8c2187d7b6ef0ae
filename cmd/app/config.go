package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/amberlee2706/scribe/internal/userservice"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`

	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	TokenSecret     string `mapstructure:"TOKEN_SECRET"`
	TokenAlgorithm  string `mapstructure:"TOKEN_ALGORITHM"`
	TokenTTLMinutes int    `mapstructure:"TOKEN_TTL_MINUTES"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// tokenConfig builds the signing configuration for access tokens. Zero
// values fall back to the token service defaults (HS256, 15 minutes).
func (c *Config) tokenConfig() userservice.TokenConfig {
	return userservice.TokenConfig{
		Secret:    c.TokenSecret,
		Algorithm: c.TokenAlgorithm,
		TTL:       time.Duration(c.TokenTTLMinutes) * time.Minute,
	}
}
