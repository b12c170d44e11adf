// Package logging wraps zap behind a key/value API so call sites never build
// zap.Field values themselves.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Format selects the line encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Options configures New. A nil Writer means stdout for JSON and stderr for
// console output.
type Options struct {
	Format Format
	Level  Level
	Writer io.Writer
}

type Logger struct {
	base   *zap.Logger
	synced *atomic.Bool
}

var fallback atomic.Pointer[Logger]

func init() {
	fallback.Store(NewNop())
}

// ParseLevel maps an APP_LOG_LEVEL value; empty means info.
func ParseLevel(raw string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "warning" {
		name = "warn"
	}
	switch name {
	case "":
		return LevelInfo, nil
	case "debug", "info", "warn", "error":
		return zapcore.ParseLevel(name)
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", raw)
}

func New(opts Options) *Logger {
	enc := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	var (
		encoder zapcore.Encoder
		sink    io.Writer = opts.Writer
		extra   []zap.Option
	)
	switch opts.Format {
	case FormatConsole:
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.CallerKey = zapcore.OmitKey
		encoder = zapcore.NewConsoleEncoder(enc)
		if sink == nil {
			sink = os.Stderr
		}
	default:
		encoder = zapcore.NewJSONEncoder(enc)
		extra = append(extra, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel))
		if sink == nil {
			sink = os.Stdout
		}
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(sink)), opts.Level)
	return FromZap(zap.New(core, extra...))
}

// NewJSON logs to stdout; used by the API server.
func NewJSON(level Level) *Logger {
	return New(Options{Format: FormatJSON, Level: level})
}

// NewConsole writes human readable lines; used by the batch commands.
func NewConsole(level Level, w io.Writer) *Logger {
	return New(Options{Format: FormatConsole, Level: level, Writer: w})
}

func NewNop() *Logger {
	return FromZap(nil)
}

func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{base: z, synced: new(atomic.Bool)}
}

func Default() *Logger {
	return fallback.Load()
}

func SetDefault(logger *Logger) {
	if logger == nil {
		logger = NewNop()
	}
	fallback.Store(logger)
}

func (l *Logger) orDefault() *Logger {
	if l == nil || l.base == nil {
		return Default()
	}
	return l
}

// Sync flushes buffered entries once; later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || l.base == nil || !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.base.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	l = l.orDefault()
	return &Logger{base: l.base.With(fields(nil, args)...), synced: l.synced}
}

// Named tags every entry with a dotted component name, e.g. "points.feed".
func (l *Logger) Named(component string) *Logger {
	l = l.orDefault()
	return &Logger{base: l.base.Named(component), synced: l.synced}
}

func (l *Logger) Enabled(level Level) bool {
	return l.orDefault().base.Core().Enabled(level)
}

func (l *Logger) Debug(msg string, args ...any) { l.write(nil, LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(nil, LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(nil, LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(nil, LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.write(ctx, LevelError, msg, args)
}

func (l *Logger) write(ctx context.Context, level Level, msg string, args []any) {
	ce := l.orDefault().base.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(fields(ctx, args)...)
}

// fields converts alternating key/value args. A non-string key becomes "arg"
// and a trailing key without a value is kept with a nil value.
func fields(ctx context.Context, args []any) []zap.Field {
	out := make([]zap.Field, 0, len(args)/2+3)
	for len(args) > 0 {
		key, ok := args[0].(string)
		if !ok || key == "" {
			key = "arg"
		}
		var value any
		if len(args) > 1 {
			value = args[1]
			args = args[2:]
		} else {
			args = nil
		}
		if err, isErr := value.(error); isErr {
			out = append(out, zap.NamedError(key, err))
		} else {
			out = append(out, zap.Any(key, value))
		}
	}

	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			out = append(out,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	return out
}
