package bootstrap

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerAddr string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	QdrantHost   string
	QdrantPort   int
	QdrantAPIKey string

	OllamaURL     string
	GenerateModel string
	EmbedModel    string
	LLMTimeout    time.Duration

	TicketCollection   string
	EmbeddingDimension int

	ConversationTTL time.Duration

	LogLevel string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       0,

		QdrantHost:   getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:   6334,
		QdrantAPIKey: getEnv("QDRANT_API_KEY", ""),

		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
		GenerateModel: getEnv("GENERATE_MODEL", "llama3.1"),
		EmbedModel:    getEnv("EMBED_MODEL", "nomic-embed-text"),
		LLMTimeout:    time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,

		TicketCollection:   getEnv("TICKET_COLLECTION", "support_tickets"),
		EmbeddingDimension: getEnvInt("EMBEDDING_DIMENSION", 768),

		ConversationTTL: time.Duration(getEnvInt("CONVERSATION_TTL_HOURS", 24)) * time.Hour,

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
