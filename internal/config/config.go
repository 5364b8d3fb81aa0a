package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds service configuration.
type Config struct {
	ServerAddr           string
	LLMAPIKey            string
	LLMAPIBase           string
	LLMModel             string
	ExternalDirectoryURL string
	ExternalAPIBase      string
	SyncFilter           string
	PromptDir            string
	DatabaseURL          string
	HTTPTimeout          time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		ServerAddr:           getenv("SERVER_ADDR", "0.0.0.0:8000"),
		LLMAPIKey:            os.Getenv("LLM_API_KEY"),
		LLMAPIBase:           os.Getenv("LLM_API_BASE"),
		LLMModel:             getenv("LLM_MODEL", "qwen2.5-32b"),
		ExternalDirectoryURL: getenv("EXTERNAL_DIRECTORY_URL", "http://localhost:8000/api/v1/agents"),
		ExternalAPIBase:      getenv("EXTERNAL_API_BASE", "http://localhost:8001/api/v1"),
		SyncFilter:           os.Getenv("SYNC_FILTER"),
		PromptDir:            getenv("PROMPT_DIR", "prompts"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		HTTPTimeout:          parseDuration(getenv("HTTP_TIMEOUT", "30s"), 30*time.Second),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}
