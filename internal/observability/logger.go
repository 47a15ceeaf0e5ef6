// Package observability holds the logging and telemetry plumbing shared by the
// server and the CLI.
package observability

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// NewLogger constructs a zap logger emitting structured JSON to stdout.
// Unknown or empty levels fall back to info.
func NewLogger(level string) *zap.Logger {
	return newLogger(level, zapcore.Lock(os.Stdout))
}

// NewStderrLogger is NewLogger writing to stderr, for commands whose stdout is data.
func NewStderrLogger(level string) *zap.Logger {
	return newLogger(level, zapcore.Lock(os.Stderr))
}

func newLogger(level string, out zapcore.WriteSyncer) *zap.Logger {
	atom := zap.NewAtomicLevel()
	if err := atom.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil || strings.TrimSpace(level) == "" {
		_ = atom.UnmarshalText([]byte(defaultLogLevel))
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), out, atom)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr)))
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		NameKey:    "logger",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
	}
}
