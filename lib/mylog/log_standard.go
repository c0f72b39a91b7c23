package mylog

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var baseLogger *zap.Logger

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		baseLogger = newZapLogger()
		New = newStandardLogger
	}
}

func newZapLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

type standardLogger struct {
	componentName string
	logger        *zap.SugaredLogger
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
		logger:        baseLogger.Named(componentName).Sugar(),
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...interface{}) {
	logger := l.logger
	if traceLabel != "" {
		logger = logger.With("aggregate", traceLabel)
	}

	switch severity {
	case SeverityDebug:
		logger.Debugf(format, a...)
	case SeverityWarn:
		logger.Warnf(format, a...)
	case SeverityError:
		logger.Errorf(format, a...)
	default:
		logger.Infof(format, a...)
	}
}
