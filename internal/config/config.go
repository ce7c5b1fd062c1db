package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration shared by the API server and the loader.
type Config struct {
	Addr                 string
	MongoURI             string
	MongoDatabase        string
	RestaurantCollection string
	DataDir              string
	Timeout              time.Duration
	OperationTimeout     time.Duration
	SearchLimit          int
	ServerLog            *log.Logger
	AllowedOrigins       []string
}

// Load reads environment variables and returns a fully populated Config.
// .env がカレントディレクトリにあれば先に読み込む。既存の環境変数は上書きしない。
func Load() Config {
	_ = godotenv.Load()

	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	// 0 のままなら取り込み中のストア操作に期限を設けない。
	var operationTimeout time.Duration
	if v := strings.TrimSpace(os.Getenv("LOADER_OP_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			operationTimeout = parsed
		}
	}

	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		addr = ":" + envOrDefault("PORT", "5000")
	}

	cfg := Config{
		Addr:                 addr,
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "zomatoDB"),
		RestaurantCollection: envOrDefault("RESTAURANT_COLLECTION", "restaurants"),
		DataDir:              envOrDefault("DATA_DIR", "data"),
		Timeout:              timeout,
		OperationTimeout:     operationTimeout,
		SearchLimit:          20,
		ServerLog:            log.New(os.Stdout, "[restaurant-api] ", log.LstdFlags|log.Lshortfile),
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"*"}),
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
