package logger

import (
	"os"

	"go.uber.org/zap"
)

// Logger is the logging surface the rest of the codebase depends on.
// Keep it small; handlers and services only ever log key/value pairs.
type Logger interface {
	Info(msg string, values ...any)
	Warn(msg string, values ...any)
	Error(msg string, values ...any)
	Debug(msg string, values ...any)
	Panic(msg string, values ...any)
	Fatal(err error, values ...any)
	Printf(format string, args ...interface{})
}

type zapLog struct {
	log *zap.SugaredLogger
}

var instance *zapLog

func init() {
	var cfg zap.Config
	if os.Getenv("LOG_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if _, err := NewLogger(cfg); err != nil {
		panic(err)
	}
}

// NewLogger replaces the package-level logger. The caller-skip accounts for
// the package-level forwarding functions below.
func NewLogger(cfg zap.Config) (Logger, error) {
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	defer l.Sync() //nolint
	l = l.WithOptions(zap.AddCallerSkip(2))
	instance = &zapLog{log: l.Sugar()}
	return instance, nil
}

func GetLogger() Logger {
	if instance == nil {
		panic("logger not initialized")
	}
	return instance
}

func Info(msg string, values ...any)  { instance.Info(msg, values...) }
func Warn(msg string, values ...any)  { instance.Warn(msg, values...) }
func Error(msg string, values ...any) { instance.Error(msg, values...) }
func Debug(msg string, values ...any) { instance.Debug(msg, values...) }
func Panic(msg string, values ...any) { instance.Panic(msg, values...) }
func Fatal(err error, values ...any)  { instance.Fatal(err, values...) }

func (l *zapLog) Info(msg string, values ...any)  { l.log.Infow(msg, values...) }
func (l *zapLog) Warn(msg string, values ...any)  { l.log.Warnw(msg, values...) }
func (l *zapLog) Error(msg string, values ...any) { l.log.Errorw(msg, values...) }
func (l *zapLog) Debug(msg string, values ...any) { l.log.Debugw(msg, values...) }
func (l *zapLog) Panic(msg string, values ...any) { l.log.Panicw(msg, values...) }
func (l *zapLog) Fatal(err error, values ...any)  { l.log.Fatalw(err.Error(), values...) }

func (l *zapLog) Printf(format string, args ...interface{}) { l.log.Infof(format, args...) }
