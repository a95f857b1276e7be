// Package logger собирает zap-логгер CLI: JSON, время в ISO8601,
// уровень из аргумента или переменной LOG_LEVEL.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel — переменная окружения с уровнем логирования.
const EnvLevel = "LOG_LEVEL"

// ParseLevel переводит debug|info|warn|error в уровень zap.
// Неизвестное значение даёт info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel // fallback
	}
}

// New возвращает логгер, пишущий JSON-записи в w.
func New(level zapcore.Level, w io.Writer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.LevelKey = "level"
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// FromEnv — логгер в stderr с уровнем из LOG_LEVEL. stdout остаётся
// для результатов (CSV, таблицы).
func FromEnv() *zap.Logger {
	return New(ParseLevel(os.Getenv(EnvLevel)), os.Stderr)
}
