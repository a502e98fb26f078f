package tracer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"catalog-crud/internal/config"
	"catalog-crud/internal/logger"
	"catalog-crud/internal/utils"

	otelpyroscope "github.com/grafana/otel-profiling-go"
	"github.com/grafana/pyroscope-go"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
)

var (
	once         sync.Once
	shutdownFunc = func() {}
	initErr      error
)

var pyroLogrus = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return l
}()

// Instance installs the global tracer provider and propagator once and starts
// the profiler when configured. The returned func flushes and stops both.
func Instance(globalCtx context.Context) (func(), error) {
	once.Do(func() {
		shutdownFunc, initErr = Setup(globalCtx, config.Instance())
	})

	return shutdownFunc, initErr
}

func Setup(ctx context.Context, cfg *config.Config) (func(), error) {
	log := logger.Instance()

	opts := []trace.TracerProviderOption{}
	exporters, err := newExporters(ctx, cfg)
	if err != nil {
		log.Error("Failed to create trace exporter", slog.String("error", err.Error()))
		return func() {}, err
	}
	for _, exp := range exporters {
		opts = append(opts, trace.WithBatcher(exp))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.AppName),
			attribute.String("store.driver", cfg.StoreDriver),
		),
	)
	if err != nil {
		log.Error("Failed to create resource", slog.String("error", err.Error()))
		return func() {}, err
	}
	opts = append(opts, trace.WithResource(res))

	tp := trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(otelpyroscope.NewTracerProvider(tp))
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Info("OpenTelemetry Tracer initialized", slog.Int("exporters", len(exporters)))

	var profiler *pyroscope.Profiler
	if cfg.RemoteProfilingHttpURI != "" {
		profiler, err = pyroscope.Start(pyroscope.Config{
			ApplicationName: cfg.AppName,
			ServerAddress:   cfg.RemoteProfilingHttpURI,
			Logger:          pyroLogrus,
			Tags:            map[string]string{"hostname": utils.GetHost()},
		})
		if err != nil {
			log.Error("Pyroscope failed to start", slog.String("error", err.Error()))
		} else {
			log.Info("Pyroscope started successfully")
		}
	}

	return func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", slog.String("error", err.Error()))
		}
		if profiler != nil {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", slog.String("error", err.Error()))
			}
		}
	}, nil
}

func newExporters(ctx context.Context, cfg *config.Config) ([]trace.SpanExporter, error) {
	var exporters []trace.SpanExporter

	if cfg.RemoteTraceRpcURI != "" {
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.RemoteTraceRpcURI),
			otlptracegrpc.WithCompressor("gzip"),
			otlptracegrpc.WithDialOption(grpc.WithUserAgent(cfg.AppName)),
		)
		if err != nil {
			return nil, fmt.Errorf("otlp exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	if cfg.TraceStdout {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("stdout exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	return exporters, nil
}
