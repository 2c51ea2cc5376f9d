package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	DatabaseURL  string
	IsProduction bool

	// Oracle settings
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`
	OracleTimeout time.Duration

	// MaxImagePayload caps the encoded image size (characters of base64)
	// accepted for a deposit before any oracle call is made.
	MaxImagePayload int

	// Event publishing (optional)
	KafkaBrokers []string
	KafkaTopic   string

	// RateLimit uses the limiter formatted notation, e.g. "60-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash-latest")
	viper.SetDefault("ORACLE_TIMEOUT", "30s")
	viper.SetDefault("MAX_IMAGE_PAYLOAD", 3_500_000)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "transaction_completed")
	viper.SetDefault("RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.DatabaseURL = viper.GetString("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set. Ledgers will be kept in memory and lost on restart.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")

	oracleTimeoutStr := viper.GetString("ORACLE_TIMEOUT")
	oracleTimeout, err := time.ParseDuration(oracleTimeoutStr)
	if err != nil {
		oracleTimeout = 30 * time.Second
		if oracleTimeoutStr != "" {
			log.Printf("Warning: Invalid value for ORACLE_TIMEOUT ('%s'). Defaulting to %s.\n", oracleTimeoutStr, oracleTimeout)
		}
	}
	cfg.OracleTimeout = oracleTimeout

	cfg.MaxImagePayload = viper.GetInt("MAX_IMAGE_PAYLOAD")
	if cfg.MaxImagePayload <= 0 {
		cfg.MaxImagePayload = 3_500_000
		log.Printf("Warning: Invalid value for MAX_IMAGE_PAYLOAD. Defaulting to %d.\n", cfg.MaxImagePayload)
	}

	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
