package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir     string
	OutPath     string
	AdsURL      string
	CrmURL      string
	GA4URL      string
	ChargesURL  string
	SubsURL     string
	Port        string
	HTTPTimeout time.Duration
	LogLevel    slog.Level
}

func FromEnv() Config {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		DataDir:     envOr("DATA_DIR", "data"),
		OutPath:     envOr("OUT_PATH", "dashboard.json"),
		AdsURL:      os.Getenv("ADS_API_URL"),
		CrmURL:      os.Getenv("CRM_API_URL"),
		GA4URL:      os.Getenv("GA4_API_URL"),
		ChargesURL:  os.Getenv("CHARGES_API_URL"),
		SubsURL:     os.Getenv("SUBS_API_URL"),
		Port:        envOr("PORT", "8080"),
		HTTPTimeout: to,
		LogLevel:    lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
