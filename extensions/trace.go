package extensions

import (
	"context"
	"fmt"
	"log/slog"

	propval "github.com/pumped-fn/propval-go"
)

// TraceHook logs every source evaluation of a property.
//
// Usage:
//
//	// Structured JSON logging
//	hook := extensions.NewTraceHook(slog.NewJSONHandler(os.Stdout, nil))
//
//	// Silent (for testing)
//	hook := extensions.NewTraceHook(extensions.NewSilentHandler())
//
//	prop := propval.NewListProperty[string](
//	    propval.WithDisplayName("compilerArgs"),
//	    propval.WithHook(hook),
//	)
//
// Collected sources log at DEBUG, absent sources at INFO, and forcing
// failures at ERROR.
type TraceHook struct {
	propval.BaseHook
	logger *slog.Logger
}

// NewTraceHook creates a trace hook logging through the given handler.
func NewTraceHook(handler slog.Handler) *TraceHook {
	return &TraceHook{
		BaseHook: propval.NewBaseHook("trace"),
		logger:   slog.New(handler),
	}
}

// OnCollect logs a source contribution
func (h *TraceHook) OnCollect(op *propval.Operation) {
	h.logger.Debug("source collected", h.attrs(op)...)
}

// OnMissing logs a tolerant read finding a source absent
func (h *TraceHook) OnMissing(op *propval.Operation) {
	h.logger.Info("source missing", h.attrs(op)...)
}

// OnError logs a failure raised while forcing a source
func (h *TraceHook) OnError(err error, op *propval.Operation) {
	attrs := append(h.attrs(op), "error", err.Error())
	h.logger.Error("source evaluation failed", attrs...)
}

func (h *TraceHook) attrs(op *propval.Operation) []any {
	return []any{
		"property", h.propertyName(op),
		"operation", string(op.Kind),
		"index", op.SourceIndex,
		"source", fmt.Sprintf("%T", op.Source),
	}
}

func (h *TraceHook) propertyName(op *propval.Operation) string {
	if op.Property == nil {
		return "(unnamed)"
	}
	return propval.DisplayName().GetOrDefault(op.Property, "(unnamed)")
}

// SilentHandler is a slog.Handler that discards all log output
// Useful for testing when you don't want log output
type SilentHandler struct{}

// NewSilentHandler creates a new silent log handler
func NewSilentHandler() *SilentHandler {
	return &SilentHandler{}
}

func (h *SilentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (h *SilentHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (h *SilentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *SilentHandler) WithGroup(name string) slog.Handler {
	return h
}
