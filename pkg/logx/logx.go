// Package logx is the process-wide logger. It wraps a zap SugaredLogger so
// call sites keep a small printf-style surface.
package logx

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = build("console")
)

func build(format string) *zap.SugaredLogger {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = level
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Init configures level and output format ("json" or "console").
func Init(levelName, format string) {
	SetLevel(ParseLevel(levelName))

	mu.Lock()
	defer mu.Unlock()
	sugar = build(strings.ToLower(format))
}

// ParseLevel maps a name to a Level, defaulting to info.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(l Level) {
	level.SetLevel(zapcore.Level(l))
}

// Logger returns the underlying zap logger, e.g. for libraries that take one.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar.Desugar()
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = sugar.Sync()
}

// Entry is a logger bound to structured fields.
type Entry struct {
	s *zap.SugaredLogger
}

// With returns an Entry carrying the given key/value pairs.
func With(keysAndValues ...any) *Entry {
	return &Entry{s: current().With(keysAndValues...)}
}

func (e *Entry) Info(msg string)                   { e.s.Info(msg) }
func (e *Entry) Infof(format string, args ...any)  { e.s.Infof(format, args...) }
func (e *Entry) Warnf(format string, args ...any)  { e.s.Warnf(format, args...) }
func (e *Entry) Errorf(format string, args ...any) { e.s.Errorf(format, args...) }

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(args ...any)                 { current().Debug(args...) }
func Debugf(format string, args ...any) { current().Debugf(format, args...) }
func Info(args ...any)                  { current().Info(args...) }
func Infof(format string, args ...any)  { current().Infof(format, args...) }
func Warn(args ...any)                  { current().Warn(args...) }
func Warnf(format string, args ...any)  { current().Warnf(format, args...) }
func Error(args ...any)                 { current().Error(args...) }
func Errorf(format string, args ...any) { current().Errorf(format, args...) }
func Fatalf(format string, args ...any) { current().Fatalf(format, args...) }
