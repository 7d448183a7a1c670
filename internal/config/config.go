package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	AdminToken     string
	AdminTokenHash string
	DataFile       string
	GinMode        string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":3000"),
		AdminToken:     getenv("ADMIN_TOKEN", "admin-secret-token"),
		AdminTokenHash: getenv("ADMIN_TOKEN_HASH", ""),
		DataFile:       getenv("DATA_FILE", ""),
		GinMode:        getenv("GIN_MODE", ""),
	}
	log.Printf("[config] HTTP_ADDR=%s", cfg.HTTPAddr)
	if cfg.DataFile != "" {
		log.Printf("[config] DATA_FILE=%s", cfg.DataFile)
	} else {
		log.Printf("[config] DATA_FILE unset, persistence disabled")
	}
	if cfg.AdminTokenHash != "" {
		log.Printf("[config] ADMIN_TOKEN_HASH set, plain token ignored")
	}
	return cfg
}
