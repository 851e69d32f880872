package handlers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ggorockee/happyhours/internal/ingest"
	"github.com/ggorockee/happyhours/internal/verified"
	"github.com/ggorockee/happyhours/pkg/models"
)

type VerifiedHandler struct {
	repo   *verified.Repository
	ingest *ingest.Service
}

func NewVerifiedHandler(repo *verified.Repository, svc *ingest.Service) *VerifiedHandler {
	return &VerifiedHandler{repo: repo, ingest: svc}
}

func SetupVerifiedRoutes(router fiber.Router, repo *verified.Repository, svc *ingest.Service) {
	h := NewVerifiedHandler(repo, svc)

	router.Get("/", h.List)
	router.Delete("/", h.Clear)
	router.Post("/upload", h.Upload)
	router.Get("/history", h.History)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Put)
	router.Delete("/:id", h.Delete)
}

func (h *VerifiedHandler) List(c *fiber.Ctx) error {
	records, err := h.repo.List(c.UserContext())
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load verified businesses")
	}
	return c.JSON(records)
}

func (h *VerifiedHandler) Get(c *fiber.Ctx) error {
	record, err := h.repo.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, verified.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Business not found")
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load verified businesses")
	}
	return c.JSON(record)
}

// Upload takes the raw CSV/TSV text as the request body.
// ?replace=true overwrites the stored set instead of merging by id.
func (h *VerifiedHandler) Upload(c *fiber.Ctx) error {
	opts := ingest.Options{Replace: c.QueryBool("replace", false)}

	result, err := h.ingest.Import(c.UserContext(), bytes.NewReader(c.Body()), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to save uploaded businesses",
			"summary": result.Summary,
			"errors":  result.Errors,
		})
	}
	return c.JSON(result)
}

func (h *VerifiedHandler) Put(c *fiber.Ctx) error {
	var record models.BusinessRecord
	if err := c.BodyParser(&record); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	record.ID = c.Params("id")
	if record.Category != "" && !record.Category.Valid() {
		return errorJSON(c, fiber.StatusBadRequest, "Unknown category")
	}

	if err := h.repo.Upsert(c.UserContext(), record); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to save business")
	}
	return c.JSON(record)
}

func (h *VerifiedHandler) Delete(c *fiber.Ctx) error {
	err := h.repo.Remove(c.UserContext(), c.Params("id"))
	if errors.Is(err, verified.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Business not found")
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to remove business")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *VerifiedHandler) Clear(c *fiber.Ctx) error {
	if err := h.repo.ClearAll(c.UserContext()); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to clear verified data")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *VerifiedHandler) History(c *fiber.Ctx) error {
	return c.JSON(h.repo.History(c.UserContext()))
}
