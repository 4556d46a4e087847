package discord

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultDatabasePath = "boopato.db"
	defaultLLMBaseURL   = "https://api.groq.com/openai/v1"
	defaultLLMModel     = "llama-3.3-70b-versatile"
)

func LoadConfig() (*Config, error) {
	maxTokens := 100
	if maxTokensStr := os.Getenv("MAX_TOKENS"); maxTokensStr != "" {
		if mt, err := strconv.Atoi(maxTokensStr); err == nil {
			maxTokens = mt
		}
	}

	temperature := 0.7
	if tempStr := os.Getenv("TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 64); err == nil {
			temperature = temp
		}
	}

	kgbChance := 0.005
	if chanceStr := os.Getenv("KGB_CHANCE"); chanceStr != "" {
		if c, err := strconv.ParseFloat(chanceStr, 64); err == nil {
			kgbChance = c
		}
	}

	thinkDelay, err := durationEnv("AI_THINK_DELAY", 1500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	turnTimeout, err := durationEnv("TURN_TIMEOUT", 300*time.Second)
	if err != nil {
		return nil, err
	}

	token := os.Getenv("GROQ_API_KEY")
	if token == "" {
		token = os.Getenv("OPENAI_API_KEY")
	}

	return &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),
		DatabasePath: envOr("DATABASE_PATH", defaultDatabasePath),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		LLMToken:     token,
		LLMBaseURL:   envOr("OPENAI_BASE_URL", defaultLLMBaseURL),
		LLMModel:     envOr("LLM_MODEL", defaultLLMModel),
		MaxTokens:    maxTokens,
		Temperature:  temperature,
		KGBChance:    kgbChance,
		AIThinkDelay: thinkDelay,
		TurnTimeout:  turnTimeout,
	}, nil
}

func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.KGBChance < 0 || c.KGBChance > 1 {
		return fmt.Errorf("KGB_CHANCE must be between 0 and 1, got %v", c.KGBChance)
	}
	if c.TurnTimeout <= 0 {
		return fmt.Errorf("TURN_TIMEOUT must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationEnv accepts Go durations ("1.5s") or bare seconds ("300").
func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
