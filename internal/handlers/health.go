package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ggorockee/happyhours/internal/kvstore"
)

// HealthCheck returns the liveness status of the API
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}

// LivenessCheck k8s liveness probe
func LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck reports ready once the key/value store answers a read.
func ReadinessCheck(store kvstore.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, _, err := store.Get(c.UserContext(), "happyhours:readiness"); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"store":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	}
}

func SetupHealthRoutes(app fiber.Router, store kvstore.Store) {
	app.Get("/healthz", HealthCheck)
	app.Get("/v1/health", HealthCheck)
	app.Get("/v1/liveness", LivenessCheck)
	app.Get("/v1/readiness", ReadinessCheck(store))
}
