package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	IrisBaseURL string
	IrisWSURL   string

	BotPrefix string

	XUserID    string
	XUserEmail string
	XSessionID string

	RedisURL    string
	DatabaseURL string

	AllowedRooms []string

	EgressMode   string
	EgressDryRun bool

	MsgTemplateDir string

	ShiritoriMinTime     time.Duration
	ShiritoriMaxTime     time.Duration
	ShiritoriDefaultTime time.Duration
	ShiritoriOpeningWait time.Duration
	ShiritoriRankLimit   int
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		EgressMode:           "http",
		ShiritoriMinTime:     5 * time.Second,
		ShiritoriMaxTime:     60 * time.Second,
		ShiritoriDefaultTime: 20 * time.Second,
		ShiritoriOpeningWait: 5 * time.Second,
		ShiritoriRankLimit:   10,
	}

	cfg.IrisBaseURL = strings.TrimSpace(os.Getenv("IRIS_BASE_URL"))
	cfg.IrisWSURL = strings.TrimSpace(os.Getenv("IRIS_WS_URL"))
	cfg.BotPrefix = strings.TrimSpace(os.Getenv("BOT_PREFIX"))

	cfg.XUserID = strings.TrimSpace(os.Getenv("X_USER_ID"))
	cfg.XUserEmail = strings.TrimSpace(os.Getenv("X_USER_EMAIL"))
	cfg.XSessionID = strings.TrimSpace(os.Getenv("X_SESSION_ID"))

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ROOMS")); v != "" {
		parts := strings.Split(v, ",")
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				cfg.AllowedRooms = append(cfg.AllowedRooms, s)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("EGRESS_MODE")); v != "" {
		cfg.EgressMode = v
	}
	if v := strings.TrimSpace(os.Getenv("EGRESS_DRYRUN")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EgressDryRun = b
		}
	}

	cfg.MsgTemplateDir = strings.TrimSpace(os.Getenv("MSG_TEMPLATE_DIR"))

	// Shiritori specific; values are seconds.
	if d, ok := secondsEnv("SHIRITORI_MIN_TIME"); ok {
		cfg.ShiritoriMinTime = d
	}
	if d, ok := secondsEnv("SHIRITORI_MAX_TIME"); ok {
		cfg.ShiritoriMaxTime = d
	}
	if d, ok := secondsEnv("SHIRITORI_DEFAULT_TIME"); ok {
		cfg.ShiritoriDefaultTime = d
	}
	if v := strings.TrimSpace(os.Getenv("SHIRITORI_OPENING_WAIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ShiritoriOpeningWait = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("SHIRITORI_RANK_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ShiritoriRankLimit = n
		}
	}

	if cfg.IrisBaseURL == "" {
		return nil, errors.New("IRIS_BASE_URL is required")
	}
	if cfg.IrisWSURL == "" {
		return nil, errors.New("IRIS_WS_URL is required")
	}
	if cfg.BotPrefix == "" {
		return nil, errors.New("BOT_PREFIX is required")
	}
	if cfg.ShiritoriMinTime <= 0 || cfg.ShiritoriMaxTime < cfg.ShiritoriMinTime {
		return nil, errors.New("invalid shiritori time limits")
	}
	if cfg.ShiritoriDefaultTime < cfg.ShiritoriMinTime || cfg.ShiritoriDefaultTime > cfg.ShiritoriMaxTime {
		return nil, errors.New("SHIRITORI_DEFAULT_TIME out of range")
	}

	return cfg, nil
}

func secondsEnv(key string) (time.Duration, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}
