package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile is the scene log file, relative to the working directory.
const DefaultFile = "logs/scene.log"

// Options configure New.
type Options struct {
	// Level is a zap level name such as "debug" or "warn".
	Level string
	// File receives JSON lines, rotated by size. Empty disables the file sink.
	File string
	// Console receives human-readable lines. Nil disables the console sink.
	Console io.Writer
}

// New builds a logger that tees a colored console encoder and a rotating JSON file.
// The returned closer flushes the logger and closes the file.
func New(opts Options) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "log level %q", opts.Level)
	}
	var cores []zapcore.Core
	if opts.Console != nil {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(opts.Console), level))
	}
	var file *lumberjack.Logger
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    16,
			MaxBackups: 3,
			Compress:   true,
		}
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(file), level))
	}
	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return l, closer{l: l, file: file}, nil
}

// Stderr is New with the console sink on os.Stderr.
func Stderr(level, file string) (*zap.Logger, io.Closer, error) {
	return New(Options{Level: level, File: file, Console: os.Stderr})
}

type closer struct {
	l    *zap.Logger
	file *lumberjack.Logger
}

func (c closer) Close() error {
	// Sync on a terminal returns EINVAL on some platforms; only the file matters.
	_ = c.l.Sync()
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}
