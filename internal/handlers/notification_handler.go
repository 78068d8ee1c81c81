package handlers

import (
	"strconv"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "30"))
	search := c.Query("search", "")
	typeFilter := c.Query("type", "")

	entries, total, err := h.notificationService.List(page, pageSize, search, typeFilter)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": entries,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

func (h *NotificationHandler) Purge(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PurgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	deleted, err := h.notificationService.Purge(req.IDs, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
