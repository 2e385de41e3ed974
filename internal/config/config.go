package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// Auth provider (GoTrue-compatible)
	AuthURL     string
	AuthAnonKey string
	AuthJWKSURL string // Constructed from AuthURL + /auth/v1/.well-known/jwks.json
	// LLM gateway (OpenAI-compatible)
	OpenRouterAPIKey string
	OpenRouterURL    string
	ChatModel        string
	SiteURL          string
	// Blob storage
	BlobStoreURL   string
	BlobStoreToken string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	authURL := getEnv("AUTH_URL", "")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getEnv("TABLE_PREFIX", ""),
		AuthURL:     authURL,
		AuthAnonKey: getEnv("AUTH_ANON_KEY", ""),
		AuthJWKSURL: authURL + "/auth/v1/.well-known/jwks.json",
		// LLM gateway
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterURL:    getEnv("OPENROUTER_URL", "https://openrouter.ai/api/v1"),
		ChatModel:        getEnv("CHAT_MODEL", "tngtech/deepseek-r1t2-chimera:free"),
		SiteURL:          getEnv("SITE_URL", "http://localhost:3000"),
		// Blob storage
		BlobStoreURL:   getEnv("BLOB_STORE_URL", ""),
		BlobStoreToken: getEnv("BLOB_STORE_TOKEN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
