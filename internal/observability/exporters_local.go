//go:build !gcloud

package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
)

func newExporters(ctx context.Context, cfg Config) (exporterSet, error) {
	if cfg.OTLPEndpoint == "" {
		return exporterSet{}, nil
	}

	spanExporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return exporterSet{}, fmt.Errorf("failed to create otlp trace exporter: %w", err)
	}

	metricExporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return exporterSet{}, fmt.Errorf("failed to create otlp metric exporter: %w", err)
	}

	return exporterSet{span: spanExporter, metric: metricExporter}, nil
}
