package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "PORT", "MONGO_URI", "MONGO_DB", "RESTAURANT_COLLECTION", "DATA_DIR", "MONGO_CONNECT_TIMEOUT", "LOADER_OP_TIMEOUT", "API_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr != ":5000" {
		t.Errorf("Addr = %q, want :5000", cfg.Addr)
	}
	if cfg.MongoURI != "mongodb://127.0.0.1:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDatabase != "zomatoDB" {
		t.Errorf("MongoDatabase = %q", cfg.MongoDatabase)
	}
	if cfg.RestaurantCollection != "restaurants" {
		t.Errorf("RestaurantCollection = %q", cfg.RestaurantCollection)
	}
	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.OperationTimeout != 0 {
		t.Errorf("OperationTimeout = %v, want no deadline by default", cfg.OperationTimeout)
	}
	if cfg.SearchLimit != 20 {
		t.Errorf("SearchLimit = %d", cfg.SearchLimit)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.ServerLog == nil {
		t.Error("ServerLog is nil")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("PORT", "8081")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3s")
	t.Setenv("LOADER_OP_TIMEOUT", "2m")
	t.Setenv("API_ALLOWED_ORIGINS", "http://localhost:3000, ,http://localhost:5173")

	cfg := Load()

	if cfg.Addr != ":8081" {
		t.Errorf("Addr = %q, want :8081", cfg.Addr)
	}
	if cfg.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.OperationTimeout != 2*time.Minute {
		t.Errorf("OperationTimeout = %v", cfg.OperationTimeout)
	}
	want := []string{"http://localhost:3000", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoadHTTPAddrOverridesPort(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("PORT", "8081")

	if got := Load().Addr; got != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want 127.0.0.1:9000", got)
	}
}

func TestLoadIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("MONGO_CONNECT_TIMEOUT", "soon")

	if got := Load().Timeout; got != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", got)
	}
}
