package handlers

import (
	"strconv"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ArtistHandler struct {
	artistService *services.ArtistService
	statusService *services.StatusService
}

func NewArtistHandler(artistService *services.ArtistService, statusService *services.StatusService) *ArtistHandler {
	return &ArtistHandler{artistService: artistService, statusService: statusService}
}

func (h *ArtistHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "30"))

	filters := services.ArtistFilters{
		Search:   c.Query("search", ""),
		Category: c.Query("category", ""),
		City:     c.Query("city", ""),
		Status:   c.Query("status", ""),
		Role:     c.Query("role", ""),
	}
	if featured := c.Query("featured", ""); featured != "" {
		val := featured == "true"
		filters.Featured = &val
	}

	artists, total, err := h.artistService.List(filters, page, pageSize)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"artists":   artists,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *ArtistHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid artist ID")
	}

	profile, err := h.artistService.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

func (h *ArtistHandler) Edit(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid artist ID")
	}

	var req dto.EditArtistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.artistService.Edit(id, services.ArtistEdit{
		FullName:   req.FullName,
		Categories: req.Categories,
		Status:     req.Status,
	}, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(profile)
}

// Transition changes only the lifecycle status, through the transition table.
func (h *ArtistHandler) Transition(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid artist ID")
	}

	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.statusService.Transition(id, req.Status, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

func (h *ArtistHandler) SetFeatured(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid artist ID")
	}

	var req dto.FeatureRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.artistService.SetFeatured(id, req.IsFeatured, act); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Artist updated"})
}

func (h *ArtistHandler) Delete(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PurgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	deleted, err := h.artistService.Delete(req.IDs, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (h *ArtistHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.artistService.Categories()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *ArtistHandler) Latest(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "6"))

	artists, err := h.artistService.Latest(limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"artists": artists})
}
