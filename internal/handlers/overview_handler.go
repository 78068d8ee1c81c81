package handlers

import (
	"strconv"
	"time"

	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type OverviewHandler struct {
	overviewService *services.OverviewService
}

func NewOverviewHandler(overviewService *services.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

func (h *OverviewHandler) Stats(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(time.Now().Year())))
	if err != nil || year < 2000 {
		return badRequest(c, "Invalid year")
	}

	stats, err := h.overviewService.Stats(year)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(stats)
}

func (h *OverviewHandler) StaleArtists(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "30"))
	search := c.Query("search", "")

	items, total, err := h.overviewService.StaleArtists(search, page, pageSize)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"portfolios": items,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}
