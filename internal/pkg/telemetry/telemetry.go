// Package telemetry wires the OpenTelemetry SDK for the process.
//
// Init registers global meter, tracer and logger providers that export over
// OTLP/gRPC. Exporter endpoints, headers and TLS come from the standard
// OTEL_EXPORTER_OTLP_* environment variables. Without Init the global
// providers stay no-ops, which is what tests and telemetry-disabled runs get.
package telemetry

import (
	"context"
	"errors"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// ShutdownFunc flushes buffered telemetry and stops every provider.
type ShutdownFunc func(ctx context.Context) error

// loggerProvider is set once Init has registered a log pipeline.
var loggerProvider atomic.Pointer[sdklog.LoggerProvider]

// LoggerProvider returns the provider registered by Init, or nil before that.
// The logger package bridges zap entries through it.
func LoggerProvider() otellog.LoggerProvider {
	if lp := loggerProvider.Load(); lp != nil {
		return lp
	}
	return nil
}

func newResource(serviceName string) (*sdkresource.Resource, error) {
	return sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)),
	)
}

// pipeline builds one signal's provider, registers it globally and returns
// its shutdown.
type pipeline func(ctx context.Context, res *sdkresource.Resource) (ShutdownFunc, error)

func metrics(ctx context.Context, res *sdkresource.Resource) (ShutdownFunc, error) {
	exporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	return mp.Shutdown, nil
}

func traces(ctx context.Context, res *sdkresource.Resource) (ShutdownFunc, error) {
	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func logs(ctx context.Context, res *sdkresource.Resource) (ShutdownFunc, error) {
	exporter, err := otlploggrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)
	loggerProvider.Store(lp)

	return lp.Shutdown, nil
}

// Init starts the metric, trace and log pipelines for serviceName. If any
// pipeline fails, the ones already started are shut down and the joined
// error is returned.
func Init(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, err
	}

	var shutdowns []ShutdownFunc
	shutdownAll := func(ctx context.Context) error {
		var errs []error
		for _, shutdown := range shutdowns {
			errs = append(errs, shutdown(ctx))
		}
		return errors.Join(errs...)
	}

	for _, start := range []pipeline{metrics, traces, logs} {
		shutdown, err := start(ctx, res)
		if err != nil {
			return nil, errors.Join(err, shutdownAll(ctx))
		}
		shutdowns = append(shutdowns, shutdown)
	}

	return shutdownAll, nil
}
