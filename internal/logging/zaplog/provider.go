// Package zaplog backs the storefront logger contract with zap.
package zaplog

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceLevel sits below zap's debug level.
const TraceLevel = zapcore.DebugLevel - 1

// Encodings accepted by Options.Encoding.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// Options configures the provider. The zero value writes console-encoded
// entries to stdout at info level.
type Options struct {
	Writer   io.Writer
	Encoding string
	Level    string
	Clock    func() time.Time
}

// Provider hands out zap-backed loggers sharing one core.
type Provider struct {
	core  zapcore.Core
	level zap.AtomicLevel
	clock func() time.Time
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// ParseLevel maps a configured name onto a zap level. Unknown names report false.
func ParseLevel(name string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return zapcore.DebugLevel, true
	case "", "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "fatal":
		return zapcore.FatalLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// NewProvider builds a provider from opts.
func NewProvider(opts Options) *Provider {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	level, _ := ParseLevel(opts.Level)
	atomic := zap.NewAtomicLevelAt(level)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	var encoder zapcore.Encoder
	if strings.EqualFold(strings.TrimSpace(opts.Encoding), EncodingJSON) {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	return &Provider{
		core:  zapcore.NewCore(encoder, zapcore.AddSync(writer), atomic),
		level: atomic,
		clock: clock,
	}
}

// SetLevel changes the minimum level for every logger of the provider.
func (p *Provider) SetLevel(level zapcore.Level) {
	p.level.SetLevel(level)
}

// Sync flushes buffered entries.
func (p *Provider) Sync() error {
	return p.core.Sync()
}

// GetLogger returns a logger named after the module.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	return &logger{provider: p, name: name}
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(level, enc)
}

type logger struct {
	provider *Provider
	name     string
	fields   map[string]any
	ctx      context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.write(TraceLevel, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(zapcore.DebugLevel, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(zapcore.InfoLevel, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(zapcore.WarnLevel, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(zapcore.ErrorLevel, msg, args) }

// Fatal records at fatal level without exiting the process.
func (l *logger) Fatal(msg string, args ...any) { l.write(zapcore.FatalLevel, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	child := *l
	child.fields = make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(child.fields, l.fields)
	maps.Copy(child.fields, fields)
	return &child
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	child := *l
	child.ctx = ctx
	return &child
}

// write goes to the core directly so fatal entries skip zap's exit hook.
func (l *logger) write(level zapcore.Level, msg string, args []any) {
	core := l.provider.core
	if !core.Enabled(level) {
		return
	}
	merged := make(map[string]any, len(l.fields)+len(args)/2+2)
	maps.Copy(merged, l.fields)
	maps.Copy(merged, logging.ContextFields(l.ctx))
	pairs(merged, args)

	fields := make([]zapcore.Field, 0, len(merged))
	for _, key := range slices.Sorted(maps.Keys(merged)) {
		fields = append(fields, toField(key, merged[key]))
	}
	entry := zapcore.Entry{
		Level:      level,
		Time:       l.provider.clock(),
		LoggerName: l.name,
		Message:    msg,
	}
	// write errors are dropped
	_ = core.Write(entry, fields)
}

// pairs folds key/value args into dst. A key that is not a string, or a
// trailing value without a key, is stored under its position.
func pairs(dst map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			dst[positional(i)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			dst[positional(i+1)] = args[i+1]
			continue
		}
		dst[key] = args[i+1]
	}
}

func positional(index int) string {
	return "arg_" + strconv.Itoa(index)
}

func toField(key string, value any) zapcore.Field {
	switch v := value.(type) {
	case error:
		return zap.NamedError(key, v)
	case time.Duration:
		return zap.Duration(key, v)
	case fmt.Stringer:
		return zap.Stringer(key, v)
	default:
		return zap.Any(key, v)
	}
}
