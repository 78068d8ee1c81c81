package handlers

import (
	"github.com/artbranch/admin-api/internal/actor"
	"github.com/artbranch/admin-api/internal/dto"
	"github.com/artbranch/admin-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// Create attaches a note to the profile in the path.
func (h *NoteHandler) Create(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid profile ID")
	}

	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	note, err := h.noteService.Create(targetID, req.Content, act)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (h *NoteHandler) ListForProfile(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid profile ID")
	}

	notes, err := h.noteService.ListForProfile(targetID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"notes": notes})
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	act, err := actor.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	if err := h.noteService.Delete(noteID, act); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Note deleted"})
}
