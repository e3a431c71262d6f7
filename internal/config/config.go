package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Provider exposes application settings to the rest of the app.
type Provider interface {
	GetServerAddr() string
	GetSessionSecret() string
	GetCorpusDir() string
	GetOpenAI() OpenAI
	GetRateLimit() int
}

// OpenAI holds the chat model endpoint settings.
type OpenAI struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	SessionSecret string
	CorpusDir     string
	RateLimit     int
	OpenAI        OpenAI
}

// New loads configuration from environment variables, reading a .env file
// first when one exists.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8080"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		CorpusDir:     getEnv("CORPUS_DIR", "data"),
		RateLimit:     getEnvInt("ASK_RATE_LIMIT", 10),
		OpenAI: OpenAI{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			BaseURL:        getEnv("OPENAI_BASE_URL", ""),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", ""),
			MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 2),
		},
	}
}

func (c *Config) GetServerAddr() string    { return c.ServerAddr }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetCorpusDir() string     { return c.CorpusDir }
func (c *Config) GetOpenAI() OpenAI        { return c.OpenAI }
func (c *Config) GetRateLimit() int        { return c.RateLimit }

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
