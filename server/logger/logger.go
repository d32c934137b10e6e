package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a development logger at debug level.
func NewLogger() *zap.SugaredLogger {
	logger, err := New("debug", true)
	if err != nil {
		log.Panic(err)
	}

	return logger
}

// New builds a sugared logger at level ("debug", "info", "warn", "error").
// Development loggers print coloured, human readable lines; the others JSON.
func New(level string, development bool) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
