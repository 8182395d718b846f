// Package config provides configuration for the inputtrack host.
//
// Configuration comes from three sources, later ones overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension (Load)
//  3. INPUTTRACK_* environment variables (ApplyEnv)
//
// Command-line flags are applied by the caller after all three.
//
// # File Format
//
//	[input]
//	exclusive_capture = true
//
//	[terminal]
//	frame_rate = 60
//	key_release_delay = "500ms"
//	wheel_step = 1.0
//
//	[script]
//	path = "hud.lua"
//	watch = true
//
//	[logging]
//	level = "debug"
//	file = "/tmp/inputtrack.log"
package config
