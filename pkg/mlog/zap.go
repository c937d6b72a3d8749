package mlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger adapts a zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZap builds a production or development zap config depending on ENV_NAME,
// honoring LOG_LEVEL as an optional override of the default level.
func NewZap(envName, logLevel string) (Logger, error) {
	var cfg zap.Config

	if envName == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if logLevel != "" {
		var lvl zapcore.Level
		if err := lvl.Set(logLevel); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	cfg.DisableStacktrace = true

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &zapLogger{s: logger.Sugar()}, nil
}

func (l *zapLogger) Info(args ...any)             { l.s.Info(args...) }
func (l *zapLogger) Infof(f string, args ...any)  { l.s.Infof(f, args...) }
func (l *zapLogger) Error(args ...any)            { l.s.Error(args...) }
func (l *zapLogger) Errorf(f string, args ...any) { l.s.Errorf(f, args...) }
func (l *zapLogger) Warn(args ...any)             { l.s.Warn(args...) }
func (l *zapLogger) Warnf(f string, args ...any)  { l.s.Warnf(f, args...) }
func (l *zapLogger) Debug(args ...any)            { l.s.Debug(args...) }
func (l *zapLogger) Debugf(f string, args ...any) { l.s.Debugf(f, args...) }
func (l *zapLogger) Fatal(args ...any)            { l.s.Fatal(args...) }
func (l *zapLogger) Fatalf(f string, args ...any) { l.s.Fatalf(f, args...) }

func (l *zapLogger) WithFields(fields ...any) Logger {
	return &zapLogger{s: l.s.With(fields...)}
}

func (l *zapLogger) Sync() error {
	err := l.s.Sync()
	// Syncing stdout/stderr on Linux reliably fails with ENOTTY/EINVAL; ignore
	// it by default, but let callers that care opt into strict checking.
	if err != nil && os.Getenv("LM_STRICT_LOG_SYNC") == "" {
		return nil
	}

	return err
}
