// Package logging configures the process-wide zap logger.
package logging

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger writing to stderr. Debug enables debug level
// and caller annotations; otherwise only warnings and errors are shown.
func New(debug bool) *zap.Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = timeEncoder
	level := zapcore.WarnLevel
	var opts []zap.Option
	if debug {
		level = zapcore.DebugLevel
		opts = append(opts, zap.AddCaller())
	} else {
		cfg.CallerKey = ""
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, opts...)
}

// Install builds a logger and replaces the zap globals with it. The returned
// function restores the previous globals.
func Install(debug bool) func() {
	return zap.ReplaceGlobals(New(debug))
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}
