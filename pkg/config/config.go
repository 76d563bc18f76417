package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	CompletionsAPIURL string
	CompletionsAPIKey string
	CompletionsModel  string
	DBPath            string
	LexiconPath       string
	NatsURL           string
	MessageSubject    string
	SummaryTimeout    time.Duration
	RetrospectCron    string
	RecentMemoryLimit int
	LogLevel          string
}

func getEnv(key, defaultValue string, printEnv bool) string {
	logger := log.Default()
	value := os.Getenv(key)
	if printEnv {
		logger.Info("Env", "key", key, "value", value)
	}
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int, printEnv bool) int {
	raw := getEnv(key, "", printEnv)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func LoadConfig(printEnv bool) (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{
		CompletionsAPIURL: getEnv("COMPLETIONS_API_URL", "https://api.openai.com/v1", printEnv),
		CompletionsAPIKey: getEnv("COMPLETIONS_API_KEY", "", printEnv),
		CompletionsModel:  getEnv("COMPLETIONS_MODEL", "gpt-4.1-mini", printEnv),
		DBPath:            getEnv("DB_PATH", "./output/sqlite/companion.db", printEnv),
		LexiconPath:       getEnv("LEXICON_PATH", "", printEnv),
		NatsURL:           getEnv("NATS_URL", "", printEnv),
		MessageSubject:    getEnv("MESSAGE_SUBJECT", "companion.user.message", printEnv),
		RetrospectCron:    getEnv("RETROSPECT_CRON", "0 21 * * *", printEnv),
		RecentMemoryLimit: getEnvInt("RECENT_MEMORY_LIMIT", 20, printEnv),
		LogLevel:          getEnv("LOG_LEVEL", "info", printEnv),
	}

	timeoutSeconds := getEnvInt("SUMMARY_TIMEOUT_SECONDS", 30, printEnv)
	conf.SummaryTimeout = time.Duration(timeoutSeconds) * time.Second

	return conf, nil
}
