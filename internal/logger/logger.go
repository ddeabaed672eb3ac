// Package logger wraps a process-wide zap SugaredLogger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var sugar *zap.SugaredLogger

// Init builds the global logger. format is "json" or "console".
func Init(level, format string) {
	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = logLevel
	zapConfig.OutputPaths = []string{"stdout"}

	built, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	sugar = built.Sugar()
}

func L() *zap.SugaredLogger {
	if sugar == nil {
		// tests and library callers that skipped Init
		sugar = zap.NewNop().Sugar()
	}
	return sugar
}

func Info(msg string) { L().Info(msg) }

func Infof(template string, args ...interface{}) { L().Infof(template, args...) }

func Infow(msg string, keysAndValues ...interface{}) { L().Infow(msg, keysAndValues...) }

func Warnf(template string, args ...interface{}) { L().Warnf(template, args...) }

func Errorf(template string, args ...interface{}) { L().Errorf(template, args...) }

func Errorw(msg string, keysAndValues ...interface{}) { L().Errorw(msg, keysAndValues...) }

func Fatalf(template string, args ...interface{}) { L().Fatalf(template, args...) }

// Sync flushes any buffered entries. Call before exit.
func Sync() {
	_ = L().Sync()
}
