package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the complete host configuration.
type Config struct {
	Input    InputConfig    `toml:"input" yaml:"input"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
	Script   ScriptConfig   `toml:"script" yaml:"script"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

// InputConfig configures the input tracker.
type InputConfig struct {
	// ExclusiveCapture makes the tracker listen only while the surface
	// holds exclusive pointer capture.
	ExclusiveCapture bool `toml:"exclusive_capture" yaml:"exclusive_capture"`
}

// TerminalConfig configures the terminal platform.
type TerminalConfig struct {
	FrameRate       int      `toml:"frame_rate" yaml:"frame_rate"`
	KeyReleaseDelay Duration `toml:"key_release_delay" yaml:"key_release_delay"`
	WheelStep       float64  `toml:"wheel_step" yaml:"wheel_step"`
}

// ScriptConfig configures the Lua frame script.
type ScriptConfig struct {
	// Path is the script file. Empty disables scripting.
	Path string `toml:"path" yaml:"path"`

	// Watch reloads the script when the file changes.
	Watch bool `toml:"watch" yaml:"watch"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error, disable.
	Level string `toml:"level" yaml:"level"`

	// File is the log destination. Empty discards log output, since the
	// terminal is owned by the screen.
	File string `toml:"file" yaml:"file"`
}

// Duration is a time.Duration that decodes from strings like "500ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Input: InputConfig{
			ExclusiveCapture: false,
		},
		Terminal: TerminalConfig{
			FrameRate:       60,
			KeyReleaseDelay: Duration(500 * time.Millisecond),
			WheelStep:       1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var validLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"error":   true,
	"disable": true,
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	var problems []string

	if c.Terminal.FrameRate < 1 || c.Terminal.FrameRate > 1000 {
		problems = append(problems, fmt.Sprintf("terminal.frame_rate %d out of range 1..1000", c.Terminal.FrameRate))
	}
	if c.Terminal.KeyReleaseDelay < 0 {
		problems = append(problems, fmt.Sprintf("terminal.key_release_delay %s is negative", c.Terminal.KeyReleaseDelay.Std()))
	}
	if c.Terminal.WheelStep <= 0 {
		problems = append(problems, fmt.Sprintf("terminal.wheel_step %g must be positive", c.Terminal.WheelStep))
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		problems = append(problems, fmt.Sprintf("logging.level %q unknown", c.Logging.Level))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
