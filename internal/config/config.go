package config

import (
	"errors"
	"os"
)

type Config struct {
	Addr       string
	DBPath     string
	Production bool
}

// Load builds the configuration from the environment. The database path
// is required; the process must not start serving traffic without it.
func Load() (Config, error) {
	addr := envString("COUNCIL_ADDR", "")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":3001"
		}
	}
	cfg := Config{
		Addr:       addr,
		DBPath:     envString("COUNCIL_DB", ""),
		Production: envString("COUNCIL_ENV", "development") == "production",
	}
	if cfg.DBPath == "" {
		return Config{}, errors.New("COUNCIL_DB is not set")
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
