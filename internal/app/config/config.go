package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string
	DataFile     string
	DatasetsFile string
	AliasesFile  string

	// Bucket is the year-over-year alignment granularity: day, week or month.
	Bucket string

	BotLogins    []string
	MaxAdditions int
	EventWorkers int
}

func Load() (Config, error) {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8050"),
		DataFile:     getenv("DATA_FILE", "data/all_prs.csv"),
		DatasetsFile: getenv("DATASETS_FILE", "config/datasets.yml"),
		AliasesFile:  getenv("ALIASES_FILE", "config/aliases.yml"),
		Bucket:       getenv("BUCKET", "day"),
		BotLogins:    splitList(getenv("BOT_LOGINS", "dp-actions[bot]")),
	}

	var err error
	cfg.MaxAdditions, err = getenvInt("MAX_ADDITIONS", 30000)
	if err != nil {
		return Config{}, err
	}
	cfg.EventWorkers, err = getenvInt("EVENT_WORKERS", 4)
	if err != nil {
		return Config{}, err
	}

	if cfg.DataFile == "" {
		return Config{}, fmt.Errorf("DATA_FILE is required")
	}
	switch cfg.Bucket {
	case "day", "week", "month":
	default:
		return Config{}, fmt.Errorf("BUCKET must be one of day, week, month; got %q", cfg.Bucket)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
