package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr         = ":8080"
	defaultDatabaseURL  = "mediahub.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
	defaultUploadDir    = "./uploads"
	defaultMediaBucket  = "media-files"
	defaultStaticPrefix = "/static"
)

type Config struct {
	AppEnv       string
	Addr         string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	// Storage gateway settings: objects live under UploadDir/<bucket>/<path>
	// and are served read-only under StaticPrefix.
	UploadDir    string
	MediaBucket  string
	StaticPrefix string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:       strings.ToLower(getEnv("APP_ENV", "dev")),
		Addr:         getEnv("ADDR", defaultAddr),
		DatabaseURL:  getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:    getEnv("JWT_SECRET", defaultJWTSecret),
		UploadDir:    getEnv("UPLOAD_DIR", defaultUploadDir),
		MediaBucket:  getEnv("MEDIA_BUCKET", defaultMediaBucket),
		StaticPrefix: getEnv("STATIC_PREFIX", defaultStaticPrefix),
	}

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}
	cfg.JWTAccessTTL = ttl

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
