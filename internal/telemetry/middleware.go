package telemetry

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// MiddlewareConfig holds the configuration for the tracing middleware
type MiddlewareConfig struct {
	Telemetry *Telemetry
	Skip      func(*fiber.Ctx) bool
}

// Middleware returns a tracing + metrics middleware for Fiber
func Middleware(cfg MiddlewareConfig) fiber.Handler {
	if cfg.Skip == nil {
		cfg.Skip = func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		}
	}
	t := cfg.Telemetry

	return func(c *fiber.Ctx) error {
		if cfg.Skip(c) {
			return c.Next()
		}

		start := time.Now()
		method := c.Method()
		path := c.Path()
		pathAttrs := metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		)

		if t != nil && t.HTTPActiveRequests != nil {
			t.HTTPActiveRequests.Add(c.Context(), 1, pathAttrs)
			defer t.HTTPActiveRequests.Add(c.Context(), -1, pathAttrs)
		}

		// Extract context from incoming request headers
		carrier := propagation.HeaderCarrier{}
		for k, v := range c.GetReqHeaders() {
			for _, vv := range v {
				carrier.Set(k, vv)
			}
		}
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

		ctx, span := t.Tracer().Start(ctx, method+" "+path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethodKey.String(method),
				semconv.HTTPURLKey.String(c.OriginalURL()),
				semconv.HTTPTargetKey.String(path),
				semconv.NetHostNameKey.String(c.Hostname()),
				semconv.HTTPUserAgentKey.String(string(c.Request().Header.UserAgent())),
			),
		)
		defer span.End()

		c.Locals("otel-span", span)
		c.SetUserContext(ctx)

		err := c.Next()

		status := c.Response().StatusCode()
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("error", true))
		}

		if t != nil && t.HTTPRequestsTotal != nil {
			statusAttrs := metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
				attribute.String("status", strconv.Itoa(status)),
			)
			t.HTTPRequestsTotal.Add(c.Context(), 1, statusAttrs)
			t.HTTPRequestDuration.Record(c.Context(), time.Since(start).Seconds(), statusAttrs)
		}

		return err
	}
}

// SpanFromContext gets the current span from fiber context
func SpanFromContext(c *fiber.Ctx) trace.Span {
	span, ok := c.Locals("otel-span").(trace.Span)
	if !ok {
		return nil
	}
	return span
}
