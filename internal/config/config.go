package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port               string
	AuthToken          string
	DBURL              string
	CatalogURL         string
	CatalogAPIKey      string
	CatalogTimeoutSecs int
	ReadTimeoutSecs    int
	WriteTimeoutSecs   int
	IdleTimeoutSecs    int
	DBMaxConns         int
	DBMinConns         int
	DBMaxIdleSecs      int
	DBMaxLifeSecs      int
	DBConnTimeoutSecs  int

	// Engine tunables. The vote weight is implied: 1 - EngineGenreWeight.
	EnginePageSize       int
	EngineTopGenres      int
	EngineGenreWeight    float64
	EngineAcclaimedFloor float64
}

// Load reads configuration from environment variables, applying defaults and
// validation. A .env file in the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		AuthToken:            os.Getenv("AUTH_TOKEN"),
		DBURL:                os.Getenv("DB_URL"),
		CatalogURL:           os.Getenv("CATALOG_URL"),
		CatalogAPIKey:        os.Getenv("CATALOG_API_KEY"),
		CatalogTimeoutSecs:   getEnvInt("CATALOG_TIMEOUT_SECS", 5),
		ReadTimeoutSecs:      getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs:     getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:      getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		DBMaxConns:           getEnvInt("DB_MAX_CONNS", 20),
		DBMinConns:           getEnvInt("DB_MIN_CONNS", 2),
		DBMaxIdleSecs:        getEnvInt("DB_MAX_CONN_IDLE_SECS", 300),
		DBMaxLifeSecs:        getEnvInt("DB_MAX_CONN_LIFETIME_SECS", 3600),
		DBConnTimeoutSecs:    getEnvInt("DB_CONN_TIMEOUT_SECS", 10),
		EnginePageSize:       getEnvInt("ENGINE_PAGE_SIZE", 10),
		EngineTopGenres:      getEnvInt("ENGINE_TOP_GENRES", 5),
		EngineGenreWeight:    getEnvFloat("ENGINE_GENRE_WEIGHT", 0.7),
		EngineAcclaimedFloor: getEnvFloat("ENGINE_ACCLAIMED_FLOOR", 7.5),
	}

	if cfg.AuthToken == "" {
		return Config{}, fmt.Errorf("AUTH_TOKEN is required")
	}
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if cfg.CatalogURL == "" {
		return Config{}, fmt.Errorf("CATALOG_URL is required")
	}
	if cfg.CatalogAPIKey == "" {
		return Config{}, fmt.Errorf("CATALOG_API_KEY is required")
	}
	if cfg.CatalogTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("CATALOG_TIMEOUT_SECS must be positive")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.EnginePageSize <= 0 {
		return Config{}, fmt.Errorf("ENGINE_PAGE_SIZE must be positive")
	}
	if cfg.EngineTopGenres <= 0 {
		return Config{}, fmt.Errorf("ENGINE_TOP_GENRES must be positive")
	}
	if cfg.EngineGenreWeight < 0 || cfg.EngineGenreWeight > 1 {
		return Config{}, fmt.Errorf("ENGINE_GENRE_WEIGHT must be within [0, 1]")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
