package util

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logger   = zerolog.New(os.Stdout).With().Timestamp().Logger()
	loggerMu sync.RWMutex
)

// InitLogger configures the process logger. Outside production the output is human readable.
func InitLogger(level string, production bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if !production {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Logger returns the process logger.
func Logger() zerolog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLoggerOutputForTest redirects the process logger to w and returns a restore func.
func SetLoggerOutputForTest(w io.Writer) func() {
	loggerMu.Lock()
	prev := logger
	logger = zerolog.New(w).With().Timestamp().Logger()
	loggerMu.Unlock()
	return func() {
		loggerMu.Lock()
		logger = prev
		loggerMu.Unlock()
	}
}
