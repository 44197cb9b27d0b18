// Package zaplog provides a builder-pattern constructor for creating a
// logr.Logger implementation using Zap, tuned for carrying structured
// trace output from the logsink backend.
package zaplog

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/luxas/tracing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	// Encoder is a symbolic link to zapcore.Encoder.
	Encoder = zapcore.Encoder
	// EncoderConfig is a symbolic link to zapcore.EncoderConfig.
	EncoderConfig = zapcore.EncoderConfig

	// EncoderConfigOption represents a function that applies an option to
	// the EncoderConfig.
	EncoderConfigOption func(*EncoderConfig)
	// EncoderCreator represents an Encoder constructor given a populated
	// EncoderConfig.
	EncoderCreator func(EncoderConfig) Encoder
)

// Level maps a trace severity onto the zap level space. Zap has no
// Notice, and everything from Error upward collapses onto its Error
// level; the full severity always travels as a structured field, so no
// information is lost in the collapse.
func Level(s tracing.Severity) zapcore.Level {
	switch {
	case s <= tracing.Debug:
		return zapcore.DebugLevel
	case s <= tracing.Notice:
		return zapcore.InfoLevel
	case s == tracing.Warning:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// NewZap returns a new *Builder using the default configuration.
func NewZap() *Builder {
	return &Builder{
		outW:           os.Stdout,
		encoderCfg:     zap.NewProductionEncoderConfig(),
		encoderCreator: zapcore.NewJSONEncoder,
		minSeverity:    tracing.Debug,
	}
}

// Builder is a builder-pattern struct for building a logr.Logger using
// go.uber.org/zap.
//
// The default configuration uses the production encoder configuration,
// writes JSON, passes every severity through, and logs to os.Stdout.
// Severity-based filtering normally belongs to the tracing.Filtered
// policy node; MinSeverity exists as a hard floor below it.
type Builder struct {
	outW              io.Writer
	encoderCfg        EncoderConfig
	encoderCfgOptions []EncoderConfigOption
	encoderCreator    EncoderCreator
	minSeverity       tracing.Severity
	opts              []zap.Option
}

// LogTo specifies where to write logs. If you want to write to multiple
// destinations, use io.MultiWriter or preferably zapcore.NewMultiWriteSyncer.
//
// A zapcore.WriteSyncer shall be passed in if possible, otherwise a no-op
// Sync method will be used internally. The resulting WriteSyncer is
// automatically locked using zapcore.Lock, so it can be used in a
// thread-safe manner.
//
// Defaults to os.Stdout.
//
// A call to this function overwrites any previous value.
func (b *Builder) LogTo(w io.Writer) *Builder {
	b.outW = w
	return b
}

// WithEncoderConfig lets the user fine-tune how to encode/format logs.
//
// Defaults to zap.NewProductionEncoderConfig().
//
// A call to this function overwrites any previous value.
func (b *Builder) WithEncoderConfig(cfg EncoderConfig) *Builder {
	b.encoderCfg = cfg
	return b
}

// WithEncoderConfigOption registers a function that mutates the
// registered EncoderConfig at Build() time. This is useful for
// "patching" an individual part of the EncoderConfig, instead of
// overwriting everything.
//
// A call to this function appends to the list of previous values.
func (b *Builder) WithEncoderConfigOption(opts ...EncoderConfigOption) *Builder {
	b.encoderCfgOptions = append(b.encoderCfgOptions, opts...)
	return b
}

// WithEncoderCreator uses a specific EncoderCreator to create the
// encoder.
//
// Defaults to zapcore.NewJSONEncoder.
//
// A call to this function overwrites any previous value.
func (b *Builder) WithEncoderCreator(encoderCreator EncoderCreator) *Builder {
	b.encoderCreator = encoderCreator
	return b
}

// MinSeverity sets a hard severity floor for the built logger: trace
// messages below s are dropped by the zap core itself, regardless of
// what the namespace configuration resolves.
//
// Defaults to tracing.Debug, i.e. everything passes.
//
// A call to this function overwrites any previous value.
func (b *Builder) MinSeverity(s tracing.Severity) *Builder {
	b.minSeverity = s
	return b
}

// WithOptions appends options for configuring zap.
//
// Options by default applied in Build() are:
//
//	zap.AddStacktrace(zap.DPanicLevel)
//	zap.ErrorOutput(sink)
//
// It is possible to overwrite these defaults using this method.
//
// A call to this function appends to the list of previous values.
func (b *Builder) WithOptions(opts ...zap.Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// Console is a shorthand for:
//
//	WithEncoderCreator(zapcore.NewConsoleEncoder).
//	HumanFriendlyTime()
//
// A call to this function overwrites any previous value.
func (b *Builder) Console() *Builder {
	return b.WithEncoderCreator(zapcore.NewConsoleEncoder).
		HumanFriendlyTime()
}

// NoTimestamps omits timestamps in the logs. It's useful for
// deterministic output in examples and tests.
//
// It corresponds to setting EncoderConfig.TimeKey = zapcore.OmitKey.
//
// A call to this function overwrites any previous value.
func (b *Builder) NoTimestamps() *Builder {
	return b.WithEncoderConfigOption(func(ec *EncoderConfig) {
		ec.TimeKey = zapcore.OmitKey
	})
}

// HumanFriendlyTime serializes time.Time and time.Duration in a
// human-friendly manner: ISO8601 with millisecond precision for
// timestamps, and the built-in String method for durations.
//
// A call to this function overwrites any previous value.
func (b *Builder) HumanFriendlyTime() *Builder {
	return b.WithEncoderConfigOption(func(ec *EncoderConfig) {
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeDuration = zapcore.StringDurationEncoder
	})
}

// Build builds the zap logger with the configured options. The result
// is what the logsink backend consumes.
func (b *Builder) Build() *zap.Logger {
	// Lock the resulting zapcore.WriteSyncer to make it thread-safe,
	// e.g. for *os.Files.
	sink := zapcore.Lock(zapcore.AddSync(b.outW))

	encCfg := b.encoderCfg
	for _, mutFn := range b.encoderCfgOptions {
		mutFn(&encCfg)
	}
	encoder := b.encoderCreator(encCfg)

	// Every Error-and-above trace severity maps onto zap's Error level,
	// so stack traces there would be noise; internal zap errors still go
	// to the same sink. By prepending the defaults, the user can
	// override them later.
	opts := []zap.Option{
		zap.AddStacktrace(zap.DPanicLevel),
		zap.ErrorOutput(sink),
	}
	opts = append(opts, b.opts...)

	return zap.New(zapcore.NewCore(encoder, sink, Level(b.minSeverity)), opts...)
}

// Logger builds a logr.Logger sharing the configured sink, for the
// application's own diagnostics (e.g. configload.Watch) as opposed to
// the trace output itself.
func (b *Builder) Logger() logr.Logger {
	return zapr.NewLogger(b.Build())
}
