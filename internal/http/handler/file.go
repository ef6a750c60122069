package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vaultapi/internal/service"
)

// UploadFile accepts a multipart upload (field name: file), stores the blob
// and its metadata, and returns the created record.
//
// @Summary Upload a file to the vault
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file content"
// @Success 201 {object} model.FileRecord
// @Failure 400 {object} errorPayload
// @Router /api/upload [post]
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")

		rec, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrFileRequired) {
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// ListFiles returns every file record, newest first.
//
// @Summary List vault files
// @Produce json
// @Success 200 {array} model.FileRecord
// @Router /api/files [get]
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// ServeUpload streams the raw blob for a stored name with its recorded
// content type.
//
// @Summary Download an uploaded blob
// @Produce octet-stream
// @Param storedName path string true "generated stored name"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /uploads/{storedName} [get]
func ServeUpload(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storedName := c.Params("storedName")

		rc, rec, err := svc.Open(c.UserContext(), storedName)
		if err != nil {
			if errors.Is(err, service.ErrFileNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, rec.MimeType)
		// fasthttp closes the stream after the response is sent.
		return c.SendStream(rc, int(rec.SizeBytes))
	}
}
