package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestIsInternalIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.20.0.5", true},
		{"192.168.1.10", true},
		{"::1", true},
		{"8.8.8.8", false},
		{"172.32.0.1", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		if got := IsInternalIP(tt.ip); got != tt.want {
			t.Errorf("IsInternalIP(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}

func TestInternalOnly(t *testing.T) {
	app := fiber.New()
	app.Get("/metrics", InternalOnly(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		realIP string
		want   int
	}{
		{"10.0.0.7", fiber.StatusOK},
		{"203.0.113.9", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/metrics", nil)
		req.Header.Set("X-Real-IP", tt.realIP)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tt.want {
			t.Errorf("X-Real-IP %s: status %d, want %d", tt.realIP, resp.StatusCode, tt.want)
		}
	}
}

func TestPrometheusMiddlewarePassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(Prometheus())
	app.Get("/v1/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
}
