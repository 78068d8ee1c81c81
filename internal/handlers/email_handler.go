package handlers

import (
	"strings"

	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type EmailHandler struct {
	emailService *services.EmailService
}

func NewEmailHandler(emailService *services.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// Send delivers an ad-hoc staff message to an artist's inbox.
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	var req dto.SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		return badRequest(c, "email and message are required")
	}

	if err := h.emailService.SendGeneral(req.Email, req.Message); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send email",
		})
	}
	return c.JSON(fiber.Map{"message": "Email sent"})
}
