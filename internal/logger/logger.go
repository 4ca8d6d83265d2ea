package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Components receive it by injection and
// attach request-scoped fields with logger.With, rather than mutating a
// shared global.
func New(environment string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if environment == "development" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config.Build()
}
