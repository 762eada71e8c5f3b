// Package logger builds the zap logger used across the service.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stdout. Debug mode lowers the
// level for local runs; deployments keep Info. VIVAPREP_LOG_LEVEL
// ("debug", "info", "warn", "error") overrides both when set to a valid
// level, so a deployment can be made chatty without a restart flag.
func New(debug bool) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		resolveLevel(debug),
	)

	return zap.New(core, zap.AddCaller())
}

// resolveLevel picks the log level: env override first, then the debug
// flag. Unparseable env values are ignored rather than failing startup.
func resolveLevel(debug bool) zapcore.Level {
	if v := os.Getenv("VIVAPREP_LOG_LEVEL"); v != "" {
		if level, err := zapcore.ParseLevel(v); err == nil {
			return level
		}
	}

	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}
