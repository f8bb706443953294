package badger

import (
	"strings"

	"go.uber.org/zap"
)

// zapLogger adapts zap to badger.Logger.
type zapLogger struct {
	logger *zap.SugaredLogger
}

func (l zapLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(strings.TrimRight(format, "\n"), args...)
}

func (l zapLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf(strings.TrimRight(format, "\n"), args...)
}

func (l zapLogger) Infof(format string, args ...interface{}) {
	l.logger.Infof(strings.TrimRight(format, "\n"), args...)
}

func (l zapLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(strings.TrimRight(format, "\n"), args...)
}
