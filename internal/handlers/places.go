package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ggorockee/happyhours/internal/aggregator"
	"github.com/ggorockee/happyhours/pkg/models"
)

type PlacesHandler struct {
	aggregator *aggregator.Aggregator
}

func NewPlacesHandler(agg *aggregator.Aggregator) *PlacesHandler {
	return &PlacesHandler{aggregator: agg}
}

func SetupPlacesRoutes(router fiber.Router, agg *aggregator.Aggregator) {
	h := NewPlacesHandler(agg)

	router.Get("/nearby", h.Nearby)
}

// Nearby GET /v1/places/nearby?lat&lng&radius&category&q
func (h *PlacesHandler) Nearby(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil || !validCoord(lat, 90) || !validCoord(lng, 180) {
		return errorJSON(c, fiber.StatusBadRequest, "lat and lng are required")
	}

	radius := aggregator.DefaultRadius
	if raw := c.Query("radius"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil || r <= 0 {
			return errorJSON(c, fiber.StatusBadRequest, "radius must be a positive integer")
		}
		radius = r
	}

	cat := models.Category(c.Query("category"))
	if cat != "" && cat != models.CategoryAll && !cat.Valid() {
		return errorJSON(c, fiber.StatusBadRequest, "Unknown category")
	}

	results, err := h.aggregator.Search(c.UserContext(), aggregator.Query{
		Latitude:  lat,
		Longitude: lng,
		Radius:    radius,
		Category:  cat,
		Text:      c.Query("q"),
	})
	if err != nil {
		if errors.Is(err, aggregator.ErrSearchUnavailable) {
			return errorJSON(c, fiber.StatusServiceUnavailable, aggregator.ErrSearchUnavailable.Error())
		}
		return err
	}

	return c.JSON(results)
}

// validCoord NaN/Inf는 범위 비교를 통과하므로 따로 거름
func validCoord(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}
