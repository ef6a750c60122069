package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vaultapi/internal/service"
)

// noteRequest is the validated input for note creation.
type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateNote stores a new note.
//
// @Summary Create a note
// @Accept json
// @Produce json
// @Param body body noteRequest true "note fields"
// @Success 201 {object} model.Note
// @Failure 400 {object} errorPayload
// @Router /api/notes [post]
func CreateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req noteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "title and content are required")
		}

		note, err := svc.Create(c.UserContext(), req.Title, req.Content)
		if err != nil {
			if errors.Is(err, service.ErrNoteInvalid) {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "title and content are required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

// ListNotes returns every note, newest first.
//
// @Summary List notes
// @Produce json
// @Success 200 {array} model.Note
// @Router /api/notes [get]
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// DeleteNote removes a note by ID.
//
// @Summary Delete a note
// @Produce json
// @Param id path string true "note id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /api/notes/{id} [delete]
func DeleteNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNoteNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "note not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"message": "note deleted"})
	}
}
