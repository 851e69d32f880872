package middleware

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "happyhours_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "happyhours_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// 업로드 본문 크기
	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "happyhours_http_request_size_bytes",
			Help:    "HTTP request body size in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"method", "path"},
	)
)

// unmeteredPaths 메트릭 수집 제외 경로
var unmeteredPaths = map[string]bool{
	"/metrics": true,
	"/healthz": true,
}

// Prometheus 요청 수/지연/본문 크기 수집
func Prometheus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if unmeteredPaths[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		reqSize := float64(len(c.Body()))

		err := c.Next()

		method := c.Method()
		route := c.Route().Path
		if route == "" || route == "/" {
			route = c.Path()
		}

		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().StatusCode())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		httpRequestSize.WithLabelValues(method, route).Observe(reqSize)

		return err
	}
}

// PrometheusHandler /metrics scrape 핸들러
func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

var internalNets = mustParseCIDRs(
	"127.0.0.0/8",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"::1/128",
	"fc00::/7",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}

// IsInternalIP 사설망/loopback 주소인지 확인
func IsInternalIP(raw string) bool {
	ip := net.ParseIP(raw)
	if ip == nil {
		return false
	}
	for _, n := range internalNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// InternalOnly rejects callers outside private networks. X-Real-IP is
// honored when set by the ingress.
func InternalOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientIP := c.IP()
		if realIP := c.Get("X-Real-IP"); realIP != "" {
			clientIP = realIP
		}

		if !IsInternalIP(clientIP) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied. Internal network only.",
			})
		}
		return c.Next()
	}
}
