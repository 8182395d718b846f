package app

import (
	"io"
	"os"
	"strings"

	"github.com/kataras/golog"

	"github.com/dshills/inputtrack/internal/config"
)

// LogPrefix starts every log line.
const LogPrefix = "inputtrack "

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the root logger from cfg. Output goes to out when it is
// non-nil, otherwise to cfg.File, otherwise nowhere: the screen owns the
// terminal, so stderr is never used. The returned closer releases the
// log file, if one was opened.
func NewLogger(cfg config.LoggingConfig, out io.Writer) (*golog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}

	if out == nil {
		if cfg.File == "" {
			out = io.Discard
		} else {
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, NewOperationError("open", cfg.File, err)
			}
			out = f
			closer = f
		}
	}

	logger := golog.New()
	logger.SetPrefix(LogPrefix)
	logger.SetOutput(out)
	logger.SetLevel(levelName(cfg.Level))
	return logger, closer, nil
}

// levelName normalizes a configured level for golog.
func levelName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "info"
	}
	return s
}
