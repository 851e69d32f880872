package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ggorockee/happyhours/internal/locations"
)

// LocationDetail 도시 + 현지 시각
type LocationDetail struct {
	locations.Location
	CurrentTime string `json:"currentTime"`
	DisplayName string `json:"displayName"`
}

type LocationHandler struct {
	now func() time.Time
}

func SetupLocationRoutes(router fiber.Router) {
	h := &LocationHandler{now: time.Now}

	router.Get("/", h.List)
	router.Get("/nearest", h.Nearest)
	router.Get("/:id", h.Get)
}

// List GET /v1/locations?popular=true&q=
func (h *LocationHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		return c.JSON(locations.Search(q))
	}
	if c.QueryBool("popular", false) {
		return c.JSON(locations.Popular())
	}
	return c.JSON(locations.All())
}

func (h *LocationHandler) Nearest(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil || !validCoord(lat, 90) || !validCoord(lng, 180) {
		return errorJSON(c, fiber.StatusBadRequest, "lat and lng are required")
	}

	l, km := locations.Nearest(lat, lng)
	return c.JSON(fiber.Map{
		"location":   h.detail(l),
		"distanceKm": km,
	})
}

func (h *LocationHandler) Get(c *fiber.Ctx) error {
	l, ok := locations.ByID(c.Params("id"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Location not found")
	}
	return c.JSON(h.detail(l))
}

func (h *LocationHandler) detail(l locations.Location) LocationDetail {
	return LocationDetail{
		Location:    l,
		CurrentTime: locations.CurrentTime(l, h.now()),
		DisplayName: locations.DisplayName(l),
	}
}
