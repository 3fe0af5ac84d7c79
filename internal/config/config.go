// Package config loads environment configuration for overtype.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDataDir        = "./data"
	defaultSpeed          = 14
	defaultMistake        = 2
	defaultPausePollMs    = 50
	defaultFocusPollMs    = 120
	defaultSettleMs       = 20
	defaultStopWaitMs     = 500
	defaultCaptureDelayMs = 3000
	maxSpeed              = 200
)

// Config holds runtime configuration values.
type Config struct {
	DataDir        string
	PresetsPath    string
	DefaultSpeed   int
	DefaultMistake int
	PausePollMs    int
	FocusPollMs    int
	SettleMs       int
	StopWaitMs     int
	CaptureDelayMs int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DataDir:        defaultDataDir,
		PresetsPath:    filepath.Join(defaultDataDir, "presets.yaml"),
		DefaultSpeed:   defaultSpeed,
		DefaultMistake: defaultMistake,
		PausePollMs:    defaultPausePollMs,
		FocusPollMs:    defaultFocusPollMs,
		SettleMs:       defaultSettleMs,
		StopWaitMs:     defaultStopWaitMs,
		CaptureDelayMs: defaultCaptureDelayMs,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.PresetsPath = envString("PRESETS_PATH", filepath.Join(cfg.DataDir, "presets.yaml"))

	speed, err := envInt("DEFAULT_SPEED", cfg.DefaultSpeed)
	if err != nil {
		return Config{}, err
	}
	if speed < 1 || speed > maxSpeed {
		return Config{}, fmt.Errorf("DEFAULT_SPEED must be 1-%d", maxSpeed)
	}
	cfg.DefaultSpeed = speed

	mistake, err := envInt("DEFAULT_MISTAKE", cfg.DefaultMistake)
	if err != nil {
		return Config{}, err
	}
	if mistake < 0 || mistake > 100 {
		return Config{}, fmt.Errorf("DEFAULT_MISTAKE must be 0-100")
	}
	cfg.DefaultMistake = mistake

	if cfg.PausePollMs, err = envPositive("PAUSE_POLL_MS", cfg.PausePollMs); err != nil {
		return Config{}, err
	}
	if cfg.FocusPollMs, err = envPositive("FOCUS_POLL_MS", cfg.FocusPollMs); err != nil {
		return Config{}, err
	}
	if cfg.SettleMs, err = envPositive("SETTLE_MS", cfg.SettleMs); err != nil {
		return Config{}, err
	}
	if cfg.StopWaitMs, err = envPositive("STOP_WAIT_MS", cfg.StopWaitMs); err != nil {
		return Config{}, err
	}

	captureDelay, err := envInt("CAPTURE_DELAY_MS", cfg.CaptureDelayMs)
	if err != nil {
		return Config{}, err
	}
	if captureDelay < 0 {
		return Config{}, errors.New("CAPTURE_DELAY_MS must be >= 0")
	}
	cfg.CaptureDelayMs = captureDelay

	return cfg, nil
}

// PausePoll returns the paused-wait tick.
func (c Config) PausePoll() time.Duration {
	return time.Duration(c.PausePollMs) * time.Millisecond
}

// FocusPoll returns the focus-wait tick.
func (c Config) FocusPoll() time.Duration {
	return time.Duration(c.FocusPollMs) * time.Millisecond
}

// Settle returns the delay around typo keystrokes.
func (c Config) Settle() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}

// StopWait returns how long shutdown waits for a run to stop.
func (c Config) StopWait() time.Duration {
	return time.Duration(c.StopWaitMs) * time.Millisecond
}

// CaptureDelay returns the countdown before the foreground window is captured.
func (c Config) CaptureDelay() time.Duration {
	return time.Duration(c.CaptureDelayMs) * time.Millisecond
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envPositive returns an int env override that must be > 0.
func envPositive(key string, def int) (int, error) {
	value, err := envInt(key, def)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
