package config

import (
	"os"
	"reflect"
	"strconv"
)

type Config struct {
	TELEGRAM_BOT_TOKEN     string
	DISCORD_BOT_TOKEN      string
	OPENROUTER_API_KEY     string
	OPENROUTER_MODEL       string
	OPENROUTER_BASE_URL    string
	GROQ_API_KEY           string
	MAX_HISTORY_MESSAGES   string
	PROMPT_FILE            string
	DATABASE_LOCATION      string
	HISTORY_RETENTION_DAYS string
	METRICS_PORT           string
	S3_ENDPOINT            string
	S3_KEY_ID              string
	S3_SECRET_KEY          string
	S3_BUCKET              string
	TMP_DIR                string
}

func FromEnv() Config {
	cfg := Config{
		OPENROUTER_MODEL:       "anthropic/claude-3.5-haiku",
		OPENROUTER_BASE_URL:    "https://openrouter.ai/api/v1",
		MAX_HISTORY_MESSAGES:   "10",
		PROMPT_FILE:            "prompt.md",
		DATABASE_LOCATION:      "logos-bot.db",
		HISTORY_RETENTION_DAYS: "30",
		TMP_DIR:                "/tmp/logos-bot",
	}
	v := reflect.ValueOf(&cfg).Elem()

	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		envVar := field.Name
		envValue, exists := os.LookupEnv(envVar)
		if exists {
			v.Field(i).SetString(envValue)
		}
	}

	return cfg
}

// MaxHistoryMessages is the per-chat window of messages kept as LLM context.
func (c Config) MaxHistoryMessages() int {
	n, err := strconv.Atoi(c.MAX_HISTORY_MESSAGES)
	if err != nil || n <= 0 {
		return 10
	}
	return n
}

func (c Config) HistoryRetentionDays() int {
	n, err := strconv.Atoi(c.HISTORY_RETENTION_DAYS)
	if err != nil || n <= 0 {
		return 30
	}
	return n
}
