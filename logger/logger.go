// Package logger holds the process-wide zap logger of the wrappy command.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger discards everything until Initialize is called
var Logger = zap.NewNop().Sugar()

// Initialize installs the global logger writing to stderr. Stdout is
// reserved for generated sources when wrappy runs with --output -.
func Initialize(jsonOutput bool, verbosity int) {
	InitializeWriter(zapcore.Lock(os.Stderr), jsonOutput, verbosity)
}

// InitializeWriter installs the global logger writing to w.
func InitializeWriter(w zapcore.WriteSyncer, jsonOutput bool, verbosity int) {
	var enc zapcore.Encoder
	opts := []zap.Option{zap.ErrorOutput(w)}
	if jsonOutput {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
		opts = append(opts, zap.AddCaller())
	} else {
		enc = newMinimalEncoder()
	}

	core := zapcore.NewCore(enc, w, zap.NewAtomicLevelAt(VerbosityToLevel(verbosity)))
	Logger = zap.New(core, opts...).Sugar()
}

// Cleanup flushes buffered entries. Sync errors on terminals are expected
// and ignored.
func Cleanup() {
	_ = Logger.Sync()
}

func Debugw(msg string, keysAndValues ...interface{}) { Logger.Debugw(msg, keysAndValues...) }

func Infow(msg string, keysAndValues ...interface{}) { Logger.Infow(msg, keysAndValues...) }

func Warnw(msg string, keysAndValues ...interface{}) { Logger.Warnw(msg, keysAndValues...) }
