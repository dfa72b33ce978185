package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Apify     ApifyConfig
	Tavily    TavilyConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type AnthropicConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type ApifyConfig struct {
	APIToken string
}

type TavilyConfig struct {
	APIKey string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	URL string
}

type SessionConfig struct {
	Dir        string
	ProfileDir string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:           getEnv("SERVER_ADDR", ":8080"),
			AllowedOrigins: parseCommaSeparated(getEnv("ALLOWED_ORIGINS", "")),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Anthropic: AnthropicConfig{
			APIKey:         getEnv("ANTHROPIC_API_KEY", ""),
			Model:          getEnv("ANTHROPIC_MODEL", "claude-3-7-sonnet-latest"),
			EnableFallback: getEnvBool("ANTHROPIC_ENABLE_FALLBACK", true),
		},
		Apify: ApifyConfig{
			APIToken: getEnv("APIFY_API_TOKEN", ""),
		},
		Tavily: TavilyConfig{
			APIKey: getEnv("TAVILY_API_KEY", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			Dir:        getEnv("SESSION_DIR", "data/sessions"),
			ProfileDir: getEnv("PROFILE_DIR", "data/profiles"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Session.Dir == "" {
		return fmt.Errorf("SESSION_DIR is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
