package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"coding-agent/internal/application/port/output"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ output.LoggerPort = (*ZapLogger)(nil)

// ZapLogger adapts a zap sugared logger to LoggerPort. One JSONL file is
// written per process session under ./log/.
type ZapLogger struct {
	core  *zap.Logger
	sugar *zap.SugaredLogger
}

func NewZapLogger() (*ZapLogger, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	filename := filepath.Join("log", time.Now().Format("2006-01-02_15-04-05")+"_agent.log")

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{filename}
	cfg.ErrorOutputPaths = []string{filename}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &ZapLogger{core: core, sugar: core.Sugar()}, nil
}

func (l *ZapLogger) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *ZapLogger) WithField(key string, value any) output.LoggerPort {
	return &ZapLogger{core: l.core, sugar: l.sugar.With(key, value)}
}

func (l *ZapLogger) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &ZapLogger{core: l.core, sugar: l.sugar.With(args...)}
}

func (l *ZapLogger) Close() error {
	return l.core.Sync()
}
