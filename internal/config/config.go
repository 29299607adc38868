package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all gateway configuration.
type Config struct {
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	Mode     string `mapstructure:"MODE"` // offline | online

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBDSN    string `mapstructure:"DB_DSN"`

	AuthSecret   string `mapstructure:"AUTH_HMAC_SECRET"`
	BlobBasePath string `mapstructure:"BLOB_BASE_PATH"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	GenAI GenAIConfig `mapstructure:"GENAI"`
}

// GenAIConfig points at the generative-language API used for exercise
// generation and the tutor chat.
type GenAIConfig struct {
	APIKey  string `mapstructure:"API_KEY"`
	Model   string `mapstructure:"MODEL"`
	BaseURL string `mapstructure:"BASE_URL"`
}

// Load reads config.yaml (optional) and STUDYLINK_-prefixed environment
// variables, with sensible offline defaults.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("MODE", "offline")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("AUTH_HMAC_SECRET", "supersecret-dev-key")
	viper.SetDefault("BLOB_BASE_PATH", "./data")
	viper.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("GENAI.MODEL", "gemini-3-flash-preview")
	viper.SetDefault("GENAI.BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("GENAI.API_KEY", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("config.yaml not found, using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("STUDYLINK") // STUDYLINK_HTTP_ADDR, STUDYLINK_DB_DSN, ...
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
