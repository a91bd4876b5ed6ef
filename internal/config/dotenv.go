package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files with priority: .env.<env>.local > .env.local > .env
// godotenv.Load does NOT overwrite already-set env vars, so OS env vars always win.
// Returns list of files actually loaded.
func LoadDotEnv(env string) []string {
	candidates := []string{".env.local", ".env"}
	if env != "" {
		candidates = append([]string{".env." + env + ".local"}, candidates...)
	}

	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
