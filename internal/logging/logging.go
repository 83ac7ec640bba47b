// Package logging builds the zerolog logger shared by the server, the
// viewer controller and the checkpoint store.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level. When file is empty, logs go to
// stderr through a console writer; otherwise JSON lines are appended to file.
//
// The level parameter can be one of: trace, debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var writer io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = f.Close() }
		writer = f
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
