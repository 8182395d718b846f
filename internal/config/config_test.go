package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Input.ExclusiveCapture {
		t.Error("exclusive capture should default to false")
	}
	if cfg.Terminal.KeyReleaseDelay.Std() != 500*time.Millisecond {
		t.Errorf("KeyReleaseDelay = %v", cfg.Terminal.KeyReleaseDelay.Std())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg != Default() {
		t.Error("missing file should yield defaults")
	}

	cfg, err = Load("")
	if err != nil || cfg != Default() {
		t.Errorf("empty path = %+v, %v", cfg, err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "inputtrack.toml", `
[input]
exclusive_capture = true

[terminal]
frame_rate = 30
key_release_delay = "250ms"

[script]
path = "hud.lua"
watch = true

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Input.ExclusiveCapture {
		t.Error("exclusive_capture not applied")
	}
	if cfg.Terminal.FrameRate != 30 {
		t.Errorf("FrameRate = %d", cfg.Terminal.FrameRate)
	}
	if cfg.Terminal.KeyReleaseDelay.Std() != 250*time.Millisecond {
		t.Errorf("KeyReleaseDelay = %v", cfg.Terminal.KeyReleaseDelay.Std())
	}
	if cfg.Terminal.WheelStep != 1 {
		t.Errorf("absent wheel_step should keep default, got %v", cfg.Terminal.WheelStep)
	}
	if cfg.Script.Path != "hud.lua" || !cfg.Script.Watch {
		t.Errorf("Script = %+v", cfg.Script)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "inputtrack.yaml", `
input:
  exclusive_capture: true
terminal:
  wheel_step: 2.5
  key_release_delay: 1s
logging:
  file: /tmp/x.log
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Input.ExclusiveCapture {
		t.Error("exclusive_capture not applied")
	}
	if cfg.Terminal.WheelStep != 2.5 {
		t.Errorf("WheelStep = %v", cfg.Terminal.WheelStep)
	}
	if cfg.Terminal.KeyReleaseDelay.Std() != time.Second {
		t.Errorf("KeyReleaseDelay = %v", cfg.Terminal.KeyReleaseDelay.Std())
	}
	if cfg.Terminal.FrameRate != 60 {
		t.Errorf("absent frame_rate should keep default, got %d", cfg.Terminal.FrameRate)
	}
	if cfg.Logging.File != "/tmp/x.log" {
		t.Errorf("File = %q", cfg.Logging.File)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, "bad.toml", "[input\nexclusive_capture = ")

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q", perr.Path)
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := writeFile(t, "bad.yaml", "terminal:\n  key_release_delay: soon\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	path := writeFile(t, "config.ini", "x=1")

	_, err := Load(path)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"zero frame rate", func(c *Config) { c.Terminal.FrameRate = 0 }, false},
		{"huge frame rate", func(c *Config) { c.Terminal.FrameRate = 5000 }, false},
		{"negative delay", func(c *Config) { c.Terminal.KeyReleaseDelay = Duration(-time.Second) }, false},
		{"zero wheel step", func(c *Config) { c.Terminal.WheelStep = 0 }, false},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }, false},
		{"upper level", func(c *Config) { c.Logging.Level = "DEBUG" }, true},
		{"disable level", func(c *Config) { c.Logging.Level = "disable" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TEST_EXCLUSIVE_CAPTURE": "true",
		"TEST_FRAME_RATE":        "120",
		"TEST_KEY_RELEASE_DELAY": "80ms",
		"TEST_WHEEL_STEP":        "3",
		"TEST_SCRIPT":            "a.lua",
		"TEST_SCRIPT_WATCH":      "1",
		"TEST_LOG_LEVEL":         "warn",
		"TEST_LOG_FILE":          "",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	cfg.Logging.File = "previous.log"
	if err := applyEnv(&cfg, "TEST_", lookup); err != nil {
		t.Fatalf("applyEnv failed: %v", err)
	}

	if !cfg.Input.ExclusiveCapture {
		t.Error("EXCLUSIVE_CAPTURE not applied")
	}
	if cfg.Terminal.FrameRate != 120 {
		t.Errorf("FrameRate = %d", cfg.Terminal.FrameRate)
	}
	if cfg.Terminal.KeyReleaseDelay.Std() != 80*time.Millisecond {
		t.Errorf("KeyReleaseDelay = %v", cfg.Terminal.KeyReleaseDelay.Std())
	}
	if cfg.Terminal.WheelStep != 3 {
		t.Errorf("WheelStep = %v", cfg.Terminal.WheelStep)
	}
	if cfg.Script.Path != "a.lua" || !cfg.Script.Watch {
		t.Errorf("Script = %+v", cfg.Script)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.File != "" {
		t.Error("empty env value should override")
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := []string{"EXCLUSIVE_CAPTURE", "FRAME_RATE", "KEY_RELEASE_DELAY", "WHEEL_STEP", "SCRIPT_WATCH"}

	for _, name := range tests {
		lookup := func(n string) (string, bool) {
			if n == "X_"+name {
				return "not-a-value", true
			}
			return "", false
		}
		cfg := Default()
		if err := applyEnv(&cfg, "X_", lookup); err == nil {
			t.Errorf("%s: expected error for invalid value", name)
		}
	}
}

func TestApplyEnvProcess(t *testing.T) {
	t.Setenv("INPUTTRACK_FRAME_RATE", "24")

	cfg := Default()
	if err := ApplyEnv(&cfg, EnvPrefix); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Terminal.FrameRate != 24 {
		t.Errorf("FrameRate = %d", cfg.Terminal.FrameRate)
	}
}
