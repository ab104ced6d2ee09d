package log

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smartstow/move-planner/pkg/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StructuredLogger writes operation-scoped debug logs through the global zap logger.
//
//	tracer := logger.WithContext(ctx).Operation("save_snapshot").WithString("label", label).Build()
//	tracer.Step("encoded").WithInt("bytes", n).Log()
//	tracer.Success().Log()
type StructuredLogger struct {
	name string
	ctx  context.Context
}

func NewDebugLogger(name string) *StructuredLogger {
	return &StructuredLogger{name: name, ctx: context.Background()}
}

// WithContext returns a copy bound to ctx. The request id found in ctx is attached to every entry.
func (l *StructuredLogger) WithContext(ctx context.Context) *StructuredLogger {
	return &StructuredLogger{name: l.name, ctx: ctx}
}

// Operation starts describing an operation.
func (l *StructuredLogger) Operation(name string) *OperationBuilder {
	fields := []zap.Field{zap.String("operation", name)}
	if id := requestid.FromContext(l.ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	return &OperationBuilder{
		logger: zap.L().Named(l.name).WithOptions(zap.AddCallerSkip(1)),
		op:     name,
		fields: fields,
	}
}

type OperationBuilder struct {
	logger *zap.Logger
	op     string
	fields []zap.Field
}

func (b *OperationBuilder) WithString(key, value string) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value))
	return b
}

func (b *OperationBuilder) WithInt(key string, value int) *OperationBuilder {
	b.fields = append(b.fields, zap.Int(key, value))
	return b
}

func (b *OperationBuilder) WithFloat(key string, value float64) *OperationBuilder {
	b.fields = append(b.fields, zap.Float64(key, value))
	return b
}

func (b *OperationBuilder) WithBool(key string, value bool) *OperationBuilder {
	b.fields = append(b.fields, zap.Bool(key, value))
	return b
}

func (b *OperationBuilder) WithUUID(key string, value uuid.UUID) *OperationBuilder {
	b.fields = append(b.fields, zap.String(key, value.String()))
	return b
}

func (b *OperationBuilder) WithUUIDPtr(key string, value *uuid.UUID) *OperationBuilder {
	if value == nil {
		return b
	}
	return b.WithUUID(key, *value)
}

// WithParam attaches an arbitrary value, encoded by zap's reflection encoder.
func (b *OperationBuilder) WithParam(key string, value any) *OperationBuilder {
	b.fields = append(b.fields, zap.Any(key, value))
	return b
}

// Build logs the start of the operation and returns its tracer.
func (b *OperationBuilder) Build() *OperationTracer {
	b.logger.Debug("operation started", b.fields...)
	return &OperationTracer{
		logger: b.logger.With(b.fields...),
		op:     b.op,
		start:  time.Now(),
	}
}

// OperationTracer emits the steps and the outcome of one operation.
type OperationTracer struct {
	logger *zap.Logger
	op     string
	start  time.Time
}

func (t *OperationTracer) Step(name string) *Entry {
	return t.entry(zapcore.DebugLevel, "operation step", zap.String("step", name))
}

func (t *OperationTracer) Success() *Entry {
	return t.entry(zapcore.DebugLevel, "operation succeeded", zap.Duration("duration", time.Since(t.start)))
}

func (t *OperationTracer) Error(err error) *Entry {
	return t.entry(zapcore.ErrorLevel, "operation failed", zap.Error(err), zap.Duration("duration", time.Since(t.start)))
}

// Warn records an outcome that was recovered from, such as a fallback.
func (t *OperationTracer) Warn(err error) *Entry {
	return t.entry(zapcore.WarnLevel, "operation degraded", zap.Error(err))
}

func (t *OperationTracer) entry(level zapcore.Level, msg string, fields ...zap.Field) *Entry {
	return &Entry{logger: t.logger, level: level, msg: msg, fields: fields}
}

// Entry is one pending log line. Nothing is written until Log is called.
type Entry struct {
	logger *zap.Logger
	level  zapcore.Level
	msg    string
	fields []zap.Field
}

func (e *Entry) WithString(key, value string) *Entry {
	e.fields = append(e.fields, zap.String(key, value))
	return e
}

func (e *Entry) WithInt(key string, value int) *Entry {
	e.fields = append(e.fields, zap.Int(key, value))
	return e
}

func (e *Entry) WithFloat(key string, value float64) *Entry {
	e.fields = append(e.fields, zap.Float64(key, value))
	return e
}

func (e *Entry) WithBool(key string, value bool) *Entry {
	e.fields = append(e.fields, zap.Bool(key, value))
	return e
}

func (e *Entry) WithUUID(key string, value uuid.UUID) *Entry {
	e.fields = append(e.fields, zap.String(key, value.String()))
	return e
}

func (e *Entry) WithParam(key string, value any) *Entry {
	e.fields = append(e.fields, zap.Any(key, value))
	return e
}

func (e *Entry) Log() {
	if ce := e.logger.Check(e.level, e.msg); ce != nil {
		ce.Write(e.fields...)
	}
}
