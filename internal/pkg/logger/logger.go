// Package logger provides a global, Sugared Zap logger with optional
// OpenTelemetry integration. Logs are emitted as JSON to stderr so stdout stays
// reserved for rendered transactions. Loggers can be derived into a context
// with extra fields, and trace/span identifiers are attached automatically
// when the context carries an active span.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/geyserwatch/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ctxKeyType is the private type used to store a derived logger in a context.
type ctxKeyType struct{}

var (
	// baseLogger is the global SugaredLogger instance. It is initialized once by Init.
	baseLogger *zap.SugaredLogger

	// initBaseLoggerOnce ensures the logger is only configured a single time.
	initBaseLoggerOnce sync.Once

	// nopLogger is used until Init has been called.
	nopLogger = zap.NewNop().Sugar()

	ctxKey = ctxKeyType{}
)

const instrumentationScope = "github.com/gabapcia/geyserwatch"

// Init configures the global logger at the given level ("debug", "info",
// "warn", "error"). If an OpenTelemetry LoggerProvider has been registered
// through the telemetry package, an OTEL bridge core is added so every entry
// is also exported. Calling Init more than once has no effect
// after the first successful call.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		baseLogger = newLogger(zapcore.Lock(os.Stderr), lvl)
	})

	return nil
}

func newLogger(out zapcore.WriteSyncer, lvl zapcore.Level) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), out, lvl),
	}

	if lp := telemetry.LoggerProvider(); lp != nil {
		cores = append(cores, otelzap.NewCore(instrumentationScope, otelzap.WithLoggerProvider(lp)))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar()
}

// Sync flushes any buffered log entries. Call it on application shutdown.
// It panics if Init was never called.
func Sync() error {
	return baseLogger.Sync()
}

// current returns the initialized logger or a no-op one.
func current() *zap.SugaredLogger {
	if baseLogger == nil {
		return nopLogger
	}
	return baseLogger
}

// deriveFromCtx returns the logger stored in ctx (or the global one) enriched
// with keysAndValues and, when present, the trace and span identifiers.
func deriveFromCtx(ctx context.Context, keysAndValues ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
	if !ok {
		l = current()
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		keysAndValues = append(keysAndValues,
			"trace_id", sc.TraceID().String(),
			"span_id", sc.SpanID().String(),
		)
	}

	if len(keysAndValues) == 0 {
		return l
	}
	return l.With(keysAndValues...)
}

// Derive returns a child context carrying a logger with the given fields.
// Every log call made with the returned context includes them.
func Derive(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, ctxKey, deriveFromCtx(ctx, keysAndValues...))
}

func log(ctx context.Context, level zapcore.Level, msg string, keysAndValues ...any) {
	l := deriveFromCtx(ctx)

	switch level {
	case zapcore.DebugLevel:
		l.Debugw(msg, keysAndValues...)
	case zapcore.InfoLevel:
		l.Infow(msg, keysAndValues...)
	case zapcore.WarnLevel:
		l.Warnw(msg, keysAndValues...)
	case zapcore.ErrorLevel:
		l.Errorw(msg, keysAndValues...)
	}
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues...)
}
