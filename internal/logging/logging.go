package logging

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

// Options controls the process-wide default logger.
type Options struct {
	Level string // debug|info|warn|error
	JSON  bool
}

var def atomic.Value

func init() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	def.Store(slog.New(h))
}

// L returns the current default logger.
func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

// Configure swaps the default logger. Safe to call at any time.
func Configure(opts Options) {
	hc := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(os.Stderr, hc)
	} else {
		h = slog.NewTextHandler(os.Stderr, hc)
	}
	def.Store(slog.New(h))
}

// InitFromEnv configures logging from BUZZLINE_LOG_LEVEL and
// BUZZLINE_LOG_JSON.
func InitFromEnv() {
	jsonOut := false
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("BUZZLINE_LOG_JSON"))); err == nil {
		jsonOut = b
	}
	Configure(Options{Level: os.Getenv("BUZZLINE_LOG_LEVEL"), JSON: jsonOut})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
