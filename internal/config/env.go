package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvPrefix is the prefix of recognised environment variables.
const EnvPrefix = "INPUTTRACK_"

// ApplyEnv overrides cfg from environment variables named prefix+NAME:
//
//	EXCLUSIVE_CAPTURE  input.exclusive_capture
//	FRAME_RATE         terminal.frame_rate
//	KEY_RELEASE_DELAY  terminal.key_release_delay
//	WHEEL_STEP         terminal.wheel_step
//	SCRIPT             script.path
//	SCRIPT_WATCH       script.watch
//	LOG_LEVEL          logging.level
//	LOG_FILE           logging.file
//
// Empty values are treated as set.
func ApplyEnv(cfg *Config, prefix string) error {
	return applyEnv(cfg, prefix, os.LookupEnv)
}

func applyEnv(cfg *Config, prefix string, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		return lookup(prefix + name)
	}

	if v, ok := get("EXCLUSIVE_CAPTURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(prefix+"EXCLUSIVE_CAPTURE", err)
		}
		cfg.Input.ExclusiveCapture = b
	}
	if v, ok := get("FRAME_RATE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(prefix+"FRAME_RATE", err)
		}
		cfg.Terminal.FrameRate = n
	}
	if v, ok := get("KEY_RELEASE_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError(prefix+"KEY_RELEASE_DELAY", err)
		}
		cfg.Terminal.KeyReleaseDelay = Duration(d)
	}
	if v, ok := get("WHEEL_STEP"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(prefix+"WHEEL_STEP", err)
		}
		cfg.Terminal.WheelStep = f
	}
	if v, ok := get("SCRIPT"); ok {
		cfg.Script.Path = v
	}
	if v, ok := get("SCRIPT_WATCH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(prefix+"SCRIPT_WATCH", err)
		}
		cfg.Script.Watch = b
	}
	if v, ok := get("LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := get("LOG_FILE"); ok {
		cfg.Logging.File = v
	}
	return nil
}

func envError(name string, err error) error {
	return fmt.Errorf("environment %s: %w", name, err)
}
