// Package log builds the command line logger: a console encoder on the given
// writer, optionally teed into a rotated log file.
package log

import (
	"io"

	"github.com/natefinch/lumberjack"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Error is the class of logger configuration errors.
var Error = errs.Class("log")

// Config describes the logger.
type Config struct {
	// Level is the minimum level name (debug, info, warn, error). Empty is
	// warn.
	Level string `yaml:"level"`

	// File, if set, receives every entry as well, rotated by size.
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig logs warnings and errors to the console only.
var DefaultConfig = Config{
	Level:      "warn",
	MaxSize:    10,
	MaxBackups: 5,
	MaxAge:     30,
}

// ParseLevel reads a level name. Empty is warn.
func ParseLevel(text string) (level zapcore.Level, err error) {
	if text == "" {
		return zapcore.WarnLevel, nil
	}

	err = level.UnmarshalText([]byte(text))
	if err != nil {
		return level, Error.Wrap(err)
	}

	return level, nil
}

// Logger is a sugared logger that owns its rotated log file, if any.
type Logger struct {
	*zap.SugaredLogger

	file *lumberjack.Logger
}

// New returns a logger writing to w and, when configured, to cfg.File.
func New(cfg Config, w io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	l := &Logger{}

	syncers := []zapcore.WriteSyncer{console{w}}
	if cfg.File != "" {
		l.file = rotated(cfg)
		syncers = append(syncers, zapcore.AddSync(l.file))
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(syncers...),
		zap.NewAtomicLevelAt(level),
	)

	l.SugaredLogger = zap.New(core).Sugar()

	return l, nil
}

// Close flushes the logger and closes the log file.
func (l *Logger) Close() (err error) {
	defer Error.WrapP(&err)

	err = l.Sync()
	if l.file != nil {
		err = errs.Combine(err, l.file.Close())
	}

	return err
}

// console writes entries unbuffered. Terminals reject fsync, so Sync is a
// no-op.
type console struct {
	io.Writer
}

func (console) Sync() error { return nil }

func rotated(cfg Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
}
