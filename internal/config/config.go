package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultDayOffsetHours shifts the day boundary so late-night work counts
// toward the previous day: a day runs from 04:00 to 04:00 by default.
const DefaultDayOffsetHours = 4

// Config keeps runtime settings for the server.
type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	DayOffsetHours int

	// Optional Telegram daily digest.
	TelegramToken  string
	TelegramChatID int64
	ReportTime     string // "HH:MM", daily
	ReportInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:       strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DayOffsetHours: DefaultDayOffsetHours,
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		ReportTime:     strings.TrimSpace(os.Getenv("REPORT_TIME")),
		ReportInterval: parseInterval(strings.TrimSpace(os.Getenv("REPORT_INTERVAL_HOURS"))),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8000"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "daily_focus.db"
	}

	if raw := strings.TrimSpace(os.Getenv("DAY_OFFSET_HOURS")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 || offset > 23 {
			return cfg, fmt.Errorf("DAY_OFFSET_HOURS must be an integer in [0,23], got %q", raw)
		}
		cfg.DayOffsetHours = offset
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer, got %q", raw)
		}
		cfg.TelegramChatID = chatID
	}

	return cfg, nil
}

// DigestEnabled reports whether the Telegram daily digest should run.
func (c Config) DigestEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0 &&
		(c.ReportTime != "" || c.ReportInterval > 0)
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
