package myconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	Port                string
	ProjectID           string
	PromotionSeed       int64
	LightningInterval   time.Duration
	LightningMaxDelay   time.Duration
	SuggestedInterval   time.Duration
	SuggestedMaxDelay   time.Duration
	NotificationBacklog int
	ShutdownTimeout     time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:      envOrDefault("PORT", "8080"),
		ProjectID: envOrDefault("GOOGLE_CLOUD_PROJECT", ""),
	}

	var err error
	if cfg.PromotionSeed, err = envInt64("PROMOTION_SEED", 0); err != nil {
		return Config{}, err
	}
	if cfg.LightningInterval, err = envPositiveSeconds("LIGHTNING_INTERVAL_SECONDS", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LightningMaxDelay, err = envSeconds("LIGHTNING_MAX_DELAY_SECONDS", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SuggestedInterval, err = envPositiveSeconds("SUGGESTED_INTERVAL_SECONDS", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SuggestedMaxDelay, err = envSeconds("SUGGESTED_MAX_DELAY_SECONDS", 20*time.Second); err != nil {
		return Config{}, err
	}
	backlog, err := envInt64("NOTIFICATION_BACKLOG", 50)
	if err != nil {
		return Config{}, err
	}
	cfg.NotificationBacklog = int(backlog)
	if cfg.ShutdownTimeout, err = envSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %s", key, v, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, v)
	}
	return n, nil
}

func envSeconds(key string, def time.Duration) (time.Duration, error) {
	n, err := envInt64(key, int64(def/time.Second))
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

// envPositiveSeconds is for tick intervals, where zero would make the scheduler spin
func envPositiveSeconds(key string, def time.Duration) (time.Duration, error) {
	d, err := envSeconds(key, def)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, os.Getenv(key))
	}
	return d, nil
}
