package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ggorockee/happyhours/internal/bookmarks"
	"github.com/ggorockee/happyhours/internal/locations"
)

type BookmarkHandler struct {
	service *bookmarks.Service
}

// SetupBookmarkRoutes mounts /bookmarks and /preferences on the v1 group.
func SetupBookmarkRoutes(router fiber.Router, svc *bookmarks.Service) {
	h := &BookmarkHandler{service: svc}

	router.Get("/bookmarks", h.List)
	router.Post("/bookmarks/:placeId/toggle", h.Toggle)
	router.Put("/bookmarks/:placeId", h.Add)
	router.Delete("/bookmarks/:placeId", h.Remove)
	router.Get("/preferences", h.GetPreferences)
	router.Put("/preferences", h.PutPreferences)
}

func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.service.List(c.UserContext()))
}

func (h *BookmarkHandler) Toggle(c *fiber.Ctx) error {
	placeID := c.Params("placeId")
	on, err := h.service.Toggle(c.UserContext(), placeID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to update bookmark")
	}
	return c.JSON(fiber.Map{"placeId": placeID, "bookmarked": on})
}

func (h *BookmarkHandler) Add(c *fiber.Ctx) error {
	if err := h.service.Add(c.UserContext(), c.Params("placeId")); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to update bookmark")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BookmarkHandler) Remove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.UserContext(), c.Params("placeId")); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to update bookmark")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *BookmarkHandler) GetPreferences(c *fiber.Ctx) error {
	return c.JSON(h.service.Preferences(c.UserContext()))
}

func (h *BookmarkHandler) PutPreferences(c *fiber.Ctx) error {
	var prefs bookmarks.Preferences
	if err := c.BodyParser(&prefs); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if prefs.SelectedLocationID != "" {
		if _, ok := locations.ByID(prefs.SelectedLocationID); !ok {
			return errorJSON(c, fiber.StatusBadRequest, "Unknown location")
		}
	}

	if err := h.service.SavePreferences(c.UserContext(), prefs); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to save preferences")
	}
	return c.JSON(h.service.Preferences(c.UserContext()))
}
