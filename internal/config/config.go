package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	TitleTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret    string
	JwtExpiresIn time.Duration
	BcryptCost   int
}

type AIConfig struct {
	GeminiAPIKey string
	ChatModel    string
	TitleModel   string
	TTSModel     string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			TitleTopic:         getEnv("SESSION_TITLE_TOPIC_NAME", "SESSION_TITLE_GENERATE"),
		},
		Database: DatabaseConfig{
			Connection: os.Getenv("DB_CONNECTION_STRING"),
		},
		Auth: AuthConfig{
			JwtSecret:    os.Getenv("JWT_SECRET"),
			JwtExpiresIn: getEnvAsDuration("JWT_EXPIRES_IN", 168*time.Hour),
			BcryptCost:   getEnvAsInt("BCRYPT_COST", 10),
		},
		Ai: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			ChatModel:    getEnv("CHAT_MODEL", "gemini-2.5-flash"),
			TitleModel:   getEnv("TITLE_MODEL", "gemini-2.5-flash"),
			TTSModel:     getEnv("TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		},
	}

	// Required secrets fail startup immediately, not lazily on first request.
	if cfg.Auth.JwtSecret == "" {
		return nil, fmt.Errorf("missing required environment variable: JWT_SECRET")
	}
	if cfg.Ai.GeminiAPIKey == "" {
		return nil, fmt.Errorf("missing required environment variable: GEMINI_API_KEY")
	}
	if cfg.Database.Connection == "" {
		return nil, fmt.Errorf("missing required environment variable: DB_CONNECTION_STRING")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
