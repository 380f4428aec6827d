package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	DatabaseName string
	JWTSecret    string
	Port         string
	AllowOrigins string
	Env          string
}

// Load reads configuration from the environment, picking up a local .env
// file when present. The connection URI and signing secret have no sane
// defaults and are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:     os.Getenv("MONGODB_URI"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Port:         os.Getenv("PORT"),
		AllowOrigins: os.Getenv("ALLOW_ORIGINS"),
		Env:          os.Getenv("ENV"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.DatabaseName == "" {
		cfg.DatabaseName = "wellcheck"
	}
	if cfg.Port == "" {
		cfg.Port = "5001"
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "http://localhost:8080"
	}

	return cfg, nil
}
