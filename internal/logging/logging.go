// Package logging wires up the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// Init builds the global logger. In verbose mode it logs at debug level
// with development formatting; otherwise only warnings and errors.
func Init(verbose bool) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	cfg.Encoding = "console"

	l, err := cfg.Build()
	if err != nil {
		panic("logging init: " + err.Error())
	}
	logger = l.Sugar()
}

// L returns the current sugared logger.
func L() *zap.SugaredLogger {
	return logger
}
