package script

import "errors"

var (
	// ErrClosed is returned when operating on a closed host.
	ErrClosed = errors.New("script host is closed")

	// ErrNotLoaded is returned by Frame before a script has been loaded.
	ErrNotLoaded = errors.New("no script loaded")

	// ErrNoFrame is returned when the loaded script defines no frame function.
	ErrNoFrame = errors.New("script defines no frame function")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("script execution timeout")
)
