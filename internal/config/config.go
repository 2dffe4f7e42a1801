// README: Config loader with env defaults for HTTP, storage, cache, and AI settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type BannerConfig struct {
	Language string
	Tone     string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Storage struct {
		// DataFile backs the JSON history log. Ignored when DSN is set.
		DataFile string
		DSN      string
	}
	Redis struct {
		// Addr is optional; empty means in-process daily caches.
		Addr string
	}
	AI struct {
		GeminiKey  string
		GenTimeout time.Duration
	}
	Maps struct {
		// APIKey is optional; empty disables Places photo lookup.
		APIKey string
	}
	Banner BannerConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("VOYAGO_HTTP_ADDR", ":8080")
	cfg.Storage.DataFile = envOrDefault("VOYAGO_DATA_FILE", "data/history.json")
	cfg.Storage.DSN = envOrDefault("VOYAGO_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("VOYAGO_REDIS_ADDR", "")
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.AI.GenTimeout = time.Duration(envOrDefaultInt("VOYAGO_GEN_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.Maps.APIKey = envOrDefault("VOYAGO_MAPS_KEY", "")
	cfg.Banner.Language = envOrDefault("VOYAGO_BANNER_LANG", "English")
	cfg.Banner.Tone = envOrDefault("VOYAGO_BANNER_TONE", "friendly")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
