package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	ListenAddr   string `mapstructure:"LISTEN_ADDR"`
	GinMode      string `mapstructure:"GIN_MODE"`
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("DATABASE_PATH", "game_rating.db")
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("GIN_MODE", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
