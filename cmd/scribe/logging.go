package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aretw0/scribe"
)

// newLogger builds the CLI logger: text on stderr, plus a rotated JSON log
// file when one is configured.
func newLogger(stderr io.Writer, verbose bool, lc scribe.LogConfig) (*slog.Logger, error) {
	level, err := parseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	console := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	if lc.File == "" {
		return slog.New(console), nil
	}

	maxSize := lc.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	maxBackups := lc.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 5
	}
	rotator := &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBackups,
		MaxAge:     30, // days
		Compress:   true,
	}

	file := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(slog.NewMultiHandler(console, file)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
