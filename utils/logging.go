package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var (
	level  = new(slog.LevelVar)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
)

// LogOptions configures where log records go
type LogOptions struct {
	Level string
	// File receives JSON records in addition to the other handlers when set
	File string
	// Quiet drops terminal output, used while the TUI owns the screen
	Quiet  bool
	Writer io.Writer
}

// SetupLogging replaces the package logger. The returned func closes the log file, if any.
func SetupLogging(opts LogOptions) (func() error, error) {
	if err := SetLevel(opts.Level); err != nil {
		return nil, err
	}

	var handlers []slog.Handler
	closer := func() error { return nil }

	isSystemdService := false
	if cgroupPath, err := getCgroupPath(); err == nil {
		isSystemdService = strings.HasSuffix(path.Dir(cgroupPath), ".service")
	}

	var terminalHandler slog.Handler
	if !isSystemdService && !opts.Quiet {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		terminalHandler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
		handlers = append(handlers, terminalHandler)
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f.Close
	}

	if isSystemdService {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	if len(handlers) == 0 {
		logger = slog.New(slog.DiscardHandler)
		return closer, nil
	}
	logger = slog.New(slogmulti.Fanout(handlers...))
	return closer, nil
}

// SetLevel accepts debug, info, warn or error. Empty keeps the current level.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return nil
}

func logAt(lvl slog.Level, component, msg string, args ...interface{}) {
	if !logger.Enabled(context.Background(), lvl) {
		return
	}
	logger.Log(context.Background(), lvl, fmt.Sprintf(msg, args...), "component", component)
}

func LogInfo(msg string, args ...interface{}) {
	logAt(slog.LevelInfo, "info", msg, args...)
}

func LogError(msg string, args ...interface{}) {
	logAt(slog.LevelError, "error", msg, args...)
}

func LogDebug(msg string, args ...interface{}) {
	logAt(slog.LevelDebug, "debug", msg, args...)
}

func LogDB(msg string, args ...interface{}) {
	logAt(slog.LevelDebug, "db", msg, args...)
}

func LogHTTP(msg string, args ...interface{}) {
	logAt(slog.LevelInfo, "http", msg, args...)
}

func LogContent(msg string, args ...interface{}) {
	logAt(slog.LevelInfo, "content", msg, args...)
}

func LogConfig(msg string, args ...interface{}) {
	logAt(slog.LevelInfo, "config", msg, args...)
}

func LogStartup(msg string, args ...interface{}) {
	logAt(slog.LevelInfo, "startup", msg, args...)
}

func LogShutdown(msg string, args ...interface{}) {
	logAt(slog.LevelInfo, "shutdown", msg, args...)
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(string(content), ":")
	if len(parts) >= 3 {
		return strings.TrimSpace(parts[2]), nil
	}
	return "", nil
}
