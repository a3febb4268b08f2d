// Package config reads service configuration from the environment.
package config

import (
	"os"
	"strings"
)

type Config struct {
	Port          string
	QuestionsFile string

	// Optional integrations; each activates only when its URI is set.
	MongoURI       string
	MongoDatabase  string
	RedisURI       string
	RabbitURI      string
	RabbitExchange string
	GeminiAPIKey   string

	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		QuestionsFile:  getenv("QUESTIONS_FILE", "questions.json"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getenv("MONGO_DATABASE", "assessment_service"),
		RedisURI:       os.Getenv("REDIS_URI"),
		RabbitURI:      os.Getenv("RABBITMQ_URI"),
		RabbitExchange: getenv("RABBITMQ_EXCHANGE", "assessment.events"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
