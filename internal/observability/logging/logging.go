package logging

import (
	"context"
	"io"
	"log/slog"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// New builds the process logger: JSON in prod, text in dev. Every record
// carries the service identity, the module and, when present, trace ids.
func New(w io.Writer, level slog.Level, env Environment, info ServiceInfo, module Module) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	if env == EnvProd {
		base = slog.NewJSONHandler(w, opts)
	} else {
		base = slog.NewTextHandler(w, opts)
	}

	attrs := []slog.Attr{
		slog.String("service", info.Name),
		slog.String("version", info.Version),
		slog.String("module", string(module)),
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return slog.New(&traceHandler{Handler: base.WithAttrs(attrs)})
}

type traceHandler struct {
	slog.Handler
	projectID string
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(traceAttrs(ctx, h.projectID)...)
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs), projectID: h.projectID}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name), projectID: h.projectID}
}

// WithProjectID sets the GCP project used to format trace attributes.
func WithProjectID(logger *slog.Logger, projectID string) *slog.Logger {
	th, ok := logger.Handler().(*traceHandler)
	if !ok {
		return logger
	}
	return slog.New(&traceHandler{Handler: th.Handler, projectID: projectID})
}
