package handlers

import (
	"strconv"

	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VerificationHandler struct {
	verificationService *services.VerificationService
}

func NewVerificationHandler(verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// Submit opens a verification request. A profile submits for itself; staff
// may submit on behalf of artists who applied out of band.
func (h *VerificationHandler) Submit(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ProfileID == uuid.Nil {
		req.ProfileID = act.ID
	}
	if req.ProfileID != act.ID && !act.IsStaff() {
		return serviceError(c, services.ErrForbidden)
	}

	created, err := h.verificationService.Submit(req.ProfileID, req.SocialPlatforms, req.ProofImages)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *VerificationHandler) Decide(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request ID")
	}

	var req dto.DecideVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	decided, err := h.verificationService.Decide(requestID, req.Outcome, act)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(decided)
}

func (h *VerificationHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "30"))
	search := c.Query("search", "")
	reqStatus := c.Query("req_status", "")

	requests, total, err := h.verificationService.List(search, reqStatus, page, pageSize)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests":  requests,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *VerificationHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	req, err := h.verificationService.GetByUser(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(req)
}

func (h *VerificationHandler) Purge(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PurgeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	deleted, err := h.verificationService.PurgeByUsers(req.IDs, act)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"deleted": deleted})
}
