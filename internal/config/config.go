package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	DefaultVariant string

	RenderSize   int
	BoardNumbers bool

	MsgDir  string
	NoColor bool

	// RedisURL switches session storage from the in-process map to Redis.
	// Optional; empty keeps sessions process-local.
	RedisURL string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		RenderSize:   720,
		BoardNumbers: true,
	}

	cfg.DefaultVariant = strings.TrimSpace(os.Getenv("MAKHOS_VARIANT"))
	cfg.MsgDir = strings.TrimSpace(os.Getenv("MAKHOS_MSG_DIR"))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	if v := strings.TrimSpace(os.Getenv("MAKHOS_RENDER_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RenderSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("MAKHOS_BOARD_NUMBERS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.BoardNumbers = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("MAKHOS_NO_COLOR")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoColor = b
		}
	}

	if cfg.RenderSize < 128 || cfg.RenderSize > 4096 {
		return nil, errors.New("MAKHOS_RENDER_SIZE must be between 128 and 4096")
	}

	return cfg, nil
}
