package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global zap logger. Mode comes from APP_ENV:
// "prod"/"production" gets JSON output, everything else gets the
// development console encoder.
func Init() {
	once.Do(func() {
		var cfg zap.Config
		switch strings.ToLower(os.Getenv("APP_ENV")) {
		case "prod", "production":
			cfg = zap.NewProductionConfig()
		default:
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		zl, err := cfg.Build()
		if err != nil {
			zl = zap.NewNop()
		}
		sugar = zl.Sugar()
	})
}

// L returns the global sugared logger, initializing it on first use.
func L() *zap.SugaredLogger {
	if sugar == nil {
		Init()
	}
	return sugar
}

func Sync() { _ = L().Sync() }

func Debug(msg string, keysAndValues ...interface{}) { L().Debugw(msg, keysAndValues...) }
func Info(msg string, keysAndValues ...interface{})  { L().Infow(msg, keysAndValues...) }
func Warn(msg string, keysAndValues ...interface{})  { L().Warnw(msg, keysAndValues...) }
func Error(msg string, keysAndValues ...interface{}) { L().Errorw(msg, keysAndValues...) }
