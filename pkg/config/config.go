package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	Recommendation RecommendationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RecommendationConfig bounds how much data each ranking call pulls from storage.
type RecommendationConfig struct {
	ColdStartPool      int
	PersonalizedPool   int
	ViewedWindow       int
	SearchViewedWindow int

	DefaultColdStartLimit    int
	DefaultPersonalizedLimit int
	DefaultSearchLimit       int
	MaxLimit                 int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	reco, err := loadRecommendation()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "EcoRecommend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "eco_recommend"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Recommendation: reco,
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

// DefaultRecommendation returns the pool sizes and limits used when nothing is configured.
func DefaultRecommendation() RecommendationConfig {
	return RecommendationConfig{
		ColdStartPool:            100,
		PersonalizedPool:         200,
		ViewedWindow:             50,
		SearchViewedWindow:       20,
		DefaultColdStartLimit:    20,
		DefaultPersonalizedLimit: 20,
		DefaultSearchLimit:       50,
		MaxLimit:                 100,
	}
}

func loadRecommendation() (RecommendationConfig, error) {
	def := DefaultRecommendation()

	fields := []struct {
		key string
		dst *int
	}{
		{"RECO_COLD_START_POOL", &def.ColdStartPool},
		{"RECO_PERSONALIZED_POOL", &def.PersonalizedPool},
		{"RECO_VIEWED_WINDOW", &def.ViewedWindow},
		{"RECO_SEARCH_VIEWED_WINDOW", &def.SearchViewedWindow},
		{"RECO_DEFAULT_COLD_START_LIMIT", &def.DefaultColdStartLimit},
		{"RECO_DEFAULT_PERSONALIZED_LIMIT", &def.DefaultPersonalizedLimit},
		{"RECO_DEFAULT_SEARCH_LIMIT", &def.DefaultSearchLimit},
		{"RECO_MAX_LIMIT", &def.MaxLimit},
	}

	for _, f := range fields {
		raw := os.Getenv(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return RecommendationConfig{}, fmt.Errorf("invalid %s: %q", f.key, raw)
		}
		*f.dst = v
	}

	return def, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
