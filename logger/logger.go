// Package logger owns the process-wide logrus logger.
//
// The terminal runs in raw mode while the game is up, so log output never goes
// to stdout/stderr: it is discarded until Init points it at a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It discards everything until Init is called.
var Log = newDiscard()

// Options controls where and how much is logged
type Options struct {
	Level   string // logrus level name, LOG_LEVEL overrides
	Format  string // "text" or "json"
	File    string // empty disables logging
	MaxSize int64  // bytes; larger existing files are rotated on Init
}

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log from opts and returns the opened log file, or nil when
// logging is disabled. The caller closes the file on shutdown.
func Init(opts Options) (*os.File, error) {
	if opts.File == "" {
		Log.SetOutput(io.Discard)
		return nil, nil
	}

	level := opts.Level
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = env
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	if dir := filepath.Dir(opts.File); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	if opts.MaxSize > 0 {
		if err := rotate(opts.File, opts.MaxSize); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Log.SetOutput(f)
	return f, nil
}

// rotate renames path to a timestamped sibling when it exceeds maxSize
func rotate(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= maxSize {
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

// For returns an entry tagged with the component name
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
