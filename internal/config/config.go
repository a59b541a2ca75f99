package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	LogLevel      string
	LogFormat     string

	// Gmail OAuth2 application credentials
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// WhatsApp credential store (whatsmeow supports sqlite3 and postgres)
	WhatsAppDBDialect string
	WhatsAppDBDSN     string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "exeai"),
		DBPassword:    getEnv("DB_PASSWORD", "exeai"),
		DBName:        getEnv("DB_NAME", "exeai"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/gmail/callback"),

		WhatsAppDBDialect: getEnv("WA_DB_DIALECT", "sqlite3"),
		WhatsAppDBDSN:     getEnv("WA_DB_DSN", "file:whatsapp.db?_foreign_keys=on"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
