package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/ggorockee/happyhours/internal/config"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/pkg/models"
)

const serviceVersion = "1.0.0"

// Telemetry OpenTelemetry 인스턴스
// nil 이어도 모든 Record/Increment 메서드는 안전하게 동작
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	meter          metric.Meter

	// Ingest metrics
	IngestTotal    metric.Int64Counter
	IngestRows     metric.Int64Counter
	IngestDuration metric.Float64Histogram

	// Search metrics
	SearchTotal    metric.Int64Counter
	SearchErrors   metric.Int64Counter
	SearchResults  metric.Int64Histogram
	SearchDuration metric.Float64Histogram

	// Places provider metrics
	ProviderCalls  metric.Int64Counter
	ProviderErrors metric.Int64Counter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter
}

// New 새로운 Telemetry 인스턴스 생성
// 엔드포인트가 없으면 no-op 텔레메트리 반환
func New(ctx context.Context, cfg *config.TelemetryConfig) (*Telemetry, error) {
	log := logger.GetLogger("telemetry")

	if cfg.Endpoint == "" {
		log.Info("SIGNOZ_ENDPOINT not set, telemetry disabled")
		return newNoOpTelemetry(cfg.ServiceName)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(serviceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter, sdktrace.WithBatchTimeout(5*time.Second)),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second))),
	)
	otel.SetMeterProvider(meterProvider)

	t := &Telemetry{
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
		tracer:         tracerProvider.Tracer(cfg.ServiceName),
		meter:          meterProvider.Meter(cfg.ServiceName),
	}

	if err := t.registerMetrics(); err != nil {
		return nil, err
	}

	log.Infof("OpenTelemetry initialized with endpoint: %s", cfg.Endpoint)
	return t, nil
}

// registerMetrics 메트릭 등록
func (t *Telemetry) registerMetrics() error {
	var err error

	if t.IngestTotal, err = t.meter.Int64Counter(
		"happyhours.ingest.total",
		metric.WithDescription("Total number of ingestion batches"),
	); err != nil {
		return err
	}

	if t.IngestRows, err = t.meter.Int64Counter(
		"happyhours.ingest.rows",
		metric.WithDescription("Rows seen by the record extractor, by outcome"),
	); err != nil {
		return err
	}

	if t.IngestDuration, err = t.meter.Float64Histogram(
		"happyhours.ingest.duration",
		metric.WithDescription("Duration of ingestion batches in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}

	if t.SearchTotal, err = t.meter.Int64Counter(
		"happyhours.search.total",
		metric.WithDescription("Total number of nearby searches"),
	); err != nil {
		return err
	}

	if t.SearchErrors, err = t.meter.Int64Counter(
		"happyhours.search.errors",
		metric.WithDescription("Searches that failed to complete"),
	); err != nil {
		return err
	}

	if t.SearchResults, err = t.meter.Int64Histogram(
		"happyhours.search.results",
		metric.WithDescription("Number of results returned per search"),
	); err != nil {
		return err
	}

	if t.SearchDuration, err = t.meter.Float64Histogram(
		"happyhours.search.duration",
		metric.WithDescription("Duration of nearby searches in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}

	if t.ProviderCalls, err = t.meter.Int64Counter(
		"happyhours.provider.calls",
		metric.WithDescription("Calls to the external places provider"),
	); err != nil {
		return err
	}

	if t.ProviderErrors, err = t.meter.Int64Counter(
		"happyhours.provider.errors",
		metric.WithDescription("Failed calls to the external places provider"),
	); err != nil {
		return err
	}

	if t.HTTPRequestsTotal, err = t.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return err
	}

	if t.HTTPRequestDuration, err = t.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	); err != nil {
		return err
	}

	if t.HTTPActiveRequests, err = t.meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer
func (t *Telemetry) Tracer() trace.Tracer {
	if t == nil || t.tracer == nil {
		return otel.Tracer("happyhours")
	}
	return t.tracer
}

// StartSpan 새로운 span 시작
func (t *Telemetry) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.Tracer().Start(ctx, name, opts...)
}

// RecordIngest ingestion 결과 기록
func (t *Telemetry) RecordIngest(ctx context.Context, region string, summary models.UploadSummary, duration time.Duration) {
	if t == nil || t.IngestTotal == nil {
		return
	}
	regionAttr := attribute.String("region", region)
	t.IngestTotal.Add(ctx, 1, metric.WithAttributes(regionAttr))
	t.IngestRows.Add(ctx, int64(summary.Processed),
		metric.WithAttributes(regionAttr, attribute.String("outcome", "processed")))
	t.IngestRows.Add(ctx, int64(summary.Errors),
		metric.WithAttributes(regionAttr, attribute.String("outcome", "error")))
	if skipped := summary.Total - summary.Processed - summary.Errors; skipped > 0 {
		t.IngestRows.Add(ctx, int64(skipped),
			metric.WithAttributes(regionAttr, attribute.String("outcome", "skipped")))
	}
	t.IngestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(regionAttr))
}

// RecordSearch 검색 결과 기록
func (t *Telemetry) RecordSearch(ctx context.Context, results int, duration time.Duration, err error) {
	if t == nil || t.SearchTotal == nil {
		return
	}
	t.SearchTotal.Add(ctx, 1)
	if err != nil {
		t.SearchErrors.Add(ctx, 1)
		return
	}
	t.SearchResults.Record(ctx, int64(results))
	t.SearchDuration.Record(ctx, duration.Seconds())
}

// IncrementProviderCalls provider 호출 기록 (status: ok | error | skipped)
func (t *Telemetry) IncrementProviderCalls(ctx context.Context, status string) {
	if t == nil || t.ProviderCalls == nil {
		return
	}
	t.ProviderCalls.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if status == "error" {
		t.ProviderErrors.Add(ctx, 1)
	}
}

// Shutdown 텔레메트리 종료
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// newNoOpTelemetry no-op 텔레메트리 생성
func newNoOpTelemetry(serviceName string) (*Telemetry, error) {
	t := &Telemetry{
		tracer: otel.Tracer(serviceName),
		meter:  otel.Meter(serviceName),
	}

	// No-op metrics 등록
	_ = t.registerMetrics()

	return t, nil
}
