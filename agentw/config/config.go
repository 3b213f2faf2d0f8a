package config

import (
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	Port         string
	AgentBaseURL string
	AgentAPIKey  string
	AgentProfile string
	AgentNetwork string
	// ContextMaxTurns caps how many prior records enter the model context.
	// 0 means no limit.
	ContextMaxTurns int
}

func LoadConfig() Config {
	// Best effort: fall back to the system environment when no .env exists.
	_ = godotenv.Load()

	maxTurns, _ := strconv.Atoi(getEnv("CONTEXT_MAX_TURNS", "0"))

	return Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Port:            getEnv("PORT", "8000"),
		AgentBaseURL:    getEnv("AGENT_BASE_URL", "http://localhost:11434/v1"),
		AgentAPIKey:     getEnv("AGENT_API_KEY", ""),
		AgentProfile:    getEnv("AGENT_PROFILE", "agent.yaml"),
		AgentNetwork:    getEnv("AGENT_NETWORK", "MAINNET"),
		ContextMaxTurns: maxTurns,
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

// RedactedDatabaseURL returns the connection string with credentials
// stripped. The full URL must never reach the logs.
func (c Config) RedactedDatabaseURL() string {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.Host == "" {
		if len(c.DatabaseURL) > 20 {
			return c.DatabaseURL[:20] + "..."
		}
		return c.DatabaseURL
	}
	u.User = nil
	return u.String()
}
