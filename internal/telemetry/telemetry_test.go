package telemetry

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ggorockee/happyhours/internal/config"
	"github.com/ggorockee/happyhours/pkg/models"
)

func TestNewWithoutEndpointIsNoOp(t *testing.T) {
	tel, err := New(context.Background(), &config.TelemetryConfig{ServiceName: "test"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tel.IngestTotal == nil || tel.SearchTotal == nil {
		t.Fatal("Expected no-op instruments to be registered")
	}

	ctx := context.Background()
	tel.RecordIngest(ctx, "mumbai", models.UploadSummary{Total: 3, Processed: 1, Errors: 1}, time.Second)
	tel.RecordSearch(ctx, 5, time.Millisecond, nil)
	tel.IncrementProviderCalls(ctx, "error")

	if err := tel.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNilTelemetryIsSafe(t *testing.T) {
	var tel *Telemetry
	ctx := context.Background()

	tel.RecordIngest(ctx, "mumbai", models.UploadSummary{}, 0)
	tel.RecordSearch(ctx, 0, 0, errors.New("boom"))
	tel.IncrementProviderCalls(ctx, "ok")
	_, span := tel.StartSpan(ctx, "noop")
	span.End()

	if err := tel.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() on nil = %v", err)
	}
}

func TestMiddlewarePassesThrough(t *testing.T) {
	tel, _ := New(context.Background(), &config.TelemetryConfig{ServiceName: "test"})

	app := fiber.New()
	app.Use(Middleware(MiddlewareConfig{Telemetry: tel}))
	app.Get("/ping", func(c *fiber.Ctx) error {
		if SpanFromContext(c) == nil {
			t.Error("Expected span in locals")
		}
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("app.Test error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
