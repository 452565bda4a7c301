// Package log provides structured logging for catalogi.
//
// Two logger variants are available:
//   - Logger: Non-sugared zap.Logger for the dispatch path (structured fields)
//   - SugaredLogger: Printf-style logging for CLI surfaces
//
// All output is JSON on stderr; stdout is reserved for rendered results.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/catalogi/types"
)

// Logger provides structured logging.
type Logger struct {
	zap *zap.Logger
}

// SugaredLogger provides printf-style logging for CLI surfaces.
type SugaredLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a logger writing to os.Stderr.
// When verbose is false, debug entries are dropped.
func NewLogger(verbose bool) *Logger {
	return NewLoggerWithWriter(os.Stderr, verbose)
}

// NewLoggerWithWriter creates a logger writing to w.
func NewLoggerWithWriter(w io.Writer, verbose bool) *Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return &Logger{zap: zap.New(core)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// WithInvocation returns a logger carrying the invocation identity fields.
func (l *Logger) WithInvocation(inv *types.Invocation) *Logger {
	fields := []zap.Field{
		zap.String("invocation_id", inv.ID),
		zap.String("kind", string(inv.Kind)),
		zap.String("operation", inv.Operation),
	}
	if inv.TargetID != "" {
		fields = append(fields, zap.String("target_id", inv.TargetID))
	}
	return &Logger{zap: l.zap.With(fields...)}
}

// With returns a logger with an additional string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zap: l.zap.With(zap.String(key, value))}
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zap.Any("fields", fields))
}

// Info logs an info message.
func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zap.Any("fields", fields))
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zap.Any("fields", fields))
}

// Error logs an error message.
func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zap.Any("fields", fields))
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// Sugar returns a SugaredLogger for printf-style logging.
func (l *Logger) Sugar() *SugaredLogger {
	return &SugaredLogger{sugar: l.zap.Sugar()}
}

// Infof logs an info message with printf-style formatting.
func (s *SugaredLogger) Infof(template string, args ...any) {
	s.sugar.Infof(template, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (s *SugaredLogger) Warnf(template string, args ...any) {
	s.sugar.Warnf(template, args...)
}

// Errorf logs an error message with printf-style formatting.
func (s *SugaredLogger) Errorf(template string, args ...any) {
	s.sugar.Errorf(template, args...)
}
