package logger

import "go.uber.org/zap"

// NewNopLogger returns a Logger that discards everything. For tests.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop().Sugar()}
}
