package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// OpenAI configuration for response generation.
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel  string `mapstructure:"OPENAI_MODEL"`

	// Catalog database (MySQL) holding truck and body types.
	CatalogDSN string `mapstructure:"CATALOG_DSN"`

	// MongoDB connection for archived call records.
	MongoURL string `mapstructure:"MONGO_URL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB int    `mapstructure:"REDIS_CONTEXT_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// DropTruck backend that receives finished bookings.
	BookingAPIURL string `mapstructure:"BOOKING_API_URL"`

	// Google credentials file for speech-to-text.
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Directory where call audio is written.
	AudioOutputDir string `mapstructure:"AUDIO_OUTPUT_DIR"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("CATALOG_DSN", "")
	viper.SetDefault("MONGO_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONTEXT_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("BOOKING_API_URL", "http://127.0.0.1:8000")
	viper.SetDefault("AUDIO_OUTPUT_DIR", "storage/audio_output")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
