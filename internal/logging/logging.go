package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type loggerContextKey struct{}

const (
	TimeStampKey = "timestamp"
	MessageKey   = "message"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 14
)

// Options configure New. With File empty, output goes to Writer (stderr when
// nil).
type Options struct {
	File       string
	Level      string
	Writer     io.Writer
	MaxSizeMB  int
	MaxBackups int
}

// Logger is a logr.Logger backed by zap. Close flushes and releases the log
// file.
type Logger struct {
	logr.Logger
	zap    *zap.Logger
	closer io.Closer
}

// New builds a JSON logger. A file destination rotates through lumberjack.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var (
		sink   zapcore.WriteSyncer
		closer io.Closer
	)
	switch {
	case strings.TrimSpace(opts.File) != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		lumber := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			MaxAge:     defaultMaxAgeDays,
			LocalTime:  true,
		}
		sink = zapcore.AddSync(lumber)
		closer = lumber
	case opts.Writer != nil:
		sink = zapcore.AddSync(opts.Writer)
	default:
		sink = zapcore.Lock(os.Stderr)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, zap.NewAtomicLevelAt(level))
	zl := zap.New(core, zap.AddCaller())
	return &Logger{Logger: zapr.NewLogger(zl), zap: zl, closer: closer}, nil
}

// ParseLevel maps debug, info, warn and error to zap levels. Empty means info.
func ParseLevel(value string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", value)
	}
}

// Sync flushes buffered entries. Errors from terminals and pipes are ignored.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	if err := l.zap.Sync(); err != nil && !isIgnorableSyncError(err) {
		return err
	}
	return nil
}

// Close syncs and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	err := l.Sync()
	if l.closer != nil {
		err = errors.Join(err, l.closer.Close())
	}
	return err
}

// WithLogger attaches log to ctx.
func WithLogger(ctx context.Context, log logr.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger attached to ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerContextKey{}).(logr.Logger); ok {
			return log
		}
	}
	return logr.Discard()
}

func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "inappropriate ioctl") || strings.Contains(msg, "invalid argument")
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
