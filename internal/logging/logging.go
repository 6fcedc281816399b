// Package logging wires structured logging to a size-rotated daily log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const logDir = "logs"

// Setup configures the default slog logger to write text records to stderr
// and JSON records to logs/cold_email_<YYYYMMDD>.log, rotating at 10 MiB
// with five backups kept. Returns a close function for the file sink.
func Setup(verbose bool) (func() error, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	fileSink := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, fmt.Sprintf("cold_email_%s.log", time.Now().Format("20060102"))),
		MaxSize:    10, // MiB
		MaxBackups: 5,
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(fanoutHandler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		slog.NewJSONHandler(fileSink, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	slog.SetDefault(logger)

	return fileSink.Close, nil
}

// SetupWriter routes the default logger to w only. Used by tests.
func SetupWriter(w io.Writer) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
