package handlers

import (
	"strconv"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "30"))

	filters := services.AdminFilters{
		Search: c.Query("search", ""),
		Status: c.Query("status", ""),
	}

	admins, total, err := h.adminService.List(filters, page, pageSize)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"admins":    admins,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid admin ID")
	}

	admin, err := h.adminService.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(admin)
}

func (h *AdminHandler) Create(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.Create(req.FullName, req.Email, req.Password, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (h *AdminHandler) Edit(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid admin ID")
	}

	var req dto.EditAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	admin, err := h.adminService.Edit(id, services.AdminEdit{
		FullName: req.FullName,
		Email:    req.Email,
		Status:   req.Status,
	}, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(admin)
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PurgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	deleted, err := h.adminService.Delete(req.IDs, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
