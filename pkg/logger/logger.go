// Package logger builds the zap.SugaredLogger every ignite component logs
// through, tagging every entry with the owning service name.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-configured sugared logger scoped to service. If
// the production logger cannot be constructed (an encoder/sink
// misconfiguration, which never happens with zap's built-in production
// config), it falls back to zap's no-op logger rather than panicking.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewNop()
	}

	return base.Named(service).Sugar()
}
