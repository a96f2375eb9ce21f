// Package config loads the round pipeline's runtime configuration: a .env
// file probed at a handful of candidate paths, then process environment
// variables.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the round pipeline needs besides the
// competition id, which is supplied per-invocation.
type Config struct {
	DatabaseURL  string
	ResourcesDir string
	WorkerCount  int
	MatchTimeout time.Duration
}

// envPaths lets the same binary find its .env whether invoked from the
// repo root or a nested module dir.
var envPaths = []string{".env", "../.env", "../../.env", "roundrunner/.env"}

// Load probes for a .env file, loads it if found, then reads process
// environment variables into a Config. Missing optional variables fall
// back to documented defaults; DATABASE_URL has no default and must be
// set for any store-backed command to function.
func Load() (Config, error) {
	loaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			loaded = true
			break
		}
	}
	if !loaded {
		fmt.Println("no .env file found, using environment variables")
	}

	cfg := Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ResourcesDir: envOrDefault("RESOURCES_DIR", "./resources"),
		WorkerCount:  defaultWorkerCount(),
		MatchTimeout: 120 * time.Second,
	}

	if v := os.Getenv("WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse WORKER_COUNT=%q: %w", v, err)
		}
		if n < 1 {
			n = 1
		}
		cfg.WorkerCount = n
	}

	if v := os.Getenv("MATCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse MATCH_TIMEOUT=%q: %w", v, err)
		}
		cfg.MatchTimeout = d
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultWorkerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}
