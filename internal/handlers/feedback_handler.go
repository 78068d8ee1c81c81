package handlers

import (
	"strconv"

	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "10"))
	search := c.Query("search", "")

	items, total, err := h.feedbackService.List(search, page, pageSize)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"feedbacks": items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
