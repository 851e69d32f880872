package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ggorockee/happyhours/internal/database"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/internal/services"
)

// happyHourStore HappyHourService 중 핸들러가 쓰는 부분
type happyHourStore interface {
	List(city string) ([]services.HappyHourView, error)
	Create(req *services.CreateHappyHourRequest) (string, error)
	Ping() error
}

type HappyHourHandler struct {
	service happyHourStore
}

func NewHappyHourHandler(db *database.DB) *HappyHourHandler {
	return &HappyHourHandler{service: services.NewHappyHourService(db)}
}

func SetupHappyHourRoutes(router fiber.Router, db *database.DB) {
	mountHappyHourRoutes(router, NewHappyHourHandler(db))
}

func mountHappyHourRoutes(router fiber.Router, h *HappyHourHandler) {
	router.Get("/", h.List)
	router.Get("/status", h.Status)
	router.Post("/", h.Create)
}

// List GET /v1/happy-hours?city=ALL|<city>
func (h *HappyHourHandler) List(c *fiber.Ctx) error {
	rows, err := h.service.List(c.Query("city", services.AllCities))
	if err != nil {
		logger.GetLogger("handlers").Errorf("happy_hours 조회 실패: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database query failed")
	}
	return c.JSON(rows)
}

func (h *HappyHourHandler) Status(c *fiber.Ctx) error {
	if err := h.service.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "Server is running",
			"database": "Disconnected",
		})
	}
	return c.JSON(fiber.Map{
		"status":   "Server is running",
		"database": "Connected",
	})
}

func (h *HappyHourHandler) Create(c *fiber.Ctx) error {
	var req services.CreateHappyHourRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	id, err := h.service.Create(&req)
	if errors.Is(err, services.ErrMissingFields) {
		return errorJSON(c, fiber.StatusBadRequest, services.ErrMissingFields.Error())
	}
	if err != nil {
		logger.GetLogger("handlers").Errorf("happy_hours 저장 실패: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to save happy hour")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}
