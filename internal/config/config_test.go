package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoad_Defaults verifies defaults when nothing is set.
func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultSpeed != 14 || cfg.DefaultMistake != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FocusPoll() != 120*time.Millisecond || cfg.PausePoll() != 50*time.Millisecond {
		t.Fatalf("unexpected poll intervals: %+v", cfg)
	}
	if cfg.PresetsPath != filepath.Join("./data", "presets.yaml") {
		t.Fatalf("unexpected presets path %q", cfg.PresetsPath)
	}
}

// TestLoad_EnvOverrides verifies environment overrides.
func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DEFAULT_SPEED", "40")
	t.Setenv("DEFAULT_MISTAKE", "0")
	t.Setenv("STOP_WAIT_MS", "250")
	t.Setenv("DATA_DIR", "/tmp/overtype")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultSpeed != 40 || cfg.DefaultMistake != 0 || cfg.StopWait() != 250*time.Millisecond {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.PresetsPath != filepath.Join("/tmp/overtype", "presets.yaml") {
		t.Fatalf("unexpected presets path %q", cfg.PresetsPath)
	}
}

// TestLoad_RejectsOutOfRange verifies validation errors.
func TestLoad_RejectsOutOfRange(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_SPEED":    "0",
		"DEFAULT_MISTAKE":  "101",
		"FOCUS_POLL_MS":    "0",
		"CAPTURE_DELAY_MS": "-1",
		"SETTLE_MS":        "abc",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

// TestLoad_EnvFile verifies .env values apply without overriding the environment.
func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	env := "# comment\nexport DEFAULT_SPEED=\"30\"\nDEFAULT_MISTAKE=5\n"
	if err := os.WriteFile(filepath.Join(dir, "data", ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("DEFAULT_MISTAKE", "7")
	t.Setenv("DEFAULT_SPEED", "")
	if err := os.Unsetenv("DEFAULT_SPEED"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultSpeed != 30 || cfg.DefaultMistake != 7 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

// TestParseEnvLine verifies .env parsing rules.
func TestParseEnvLine(t *testing.T) {
	if _, _, ok := parseEnvLine("# x=1"); ok {
		t.Fatalf("expected comment to be skipped")
	}
	if _, _, ok := parseEnvLine("novalue"); ok {
		t.Fatalf("expected line without = to be skipped")
	}
	key, value, ok := parseEnvLine(" export A = 'b=c' ")
	if !ok || key != "A" || value != "b=c" {
		t.Fatalf("unexpected parse: %q %q %v", key, value, ok)
	}
}

// chdir changes the working directory for the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore dir: %v", err)
		}
	})
}
