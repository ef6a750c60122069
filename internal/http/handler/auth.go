package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vaultapi/internal/service"
)

// authRequest is the validated input for the password gate.
type authRequest struct {
	Password string `json:"password"`
}

// authResponse keeps the original lock-screen contract: a bare
// success/message pair, not the generic error envelope.
type authResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Authenticate checks a submitted password against the configured secret.
// No session or token is issued; the client re-submits on reload.
//
// @Summary Authenticate against the vault password
// @Accept json
// @Produce json
// @Param body body authRequest true "credential"
// @Success 200 {object} authResponse
// @Failure 401 {object} authResponse
// @Router /api/auth [post]
func Authenticate(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req authRequest
		if err := c.BodyParser(&req); err != nil || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(authResponse{
				Success: false,
				Message: "password is required",
			})
		}

		if err := svc.Authenticate(req.Password); err != nil {
			if errors.Is(err, service.ErrInvalidPassword) {
				return c.Status(fiber.StatusUnauthorized).JSON(authResponse{
					Success: false,
					Message: "incorrect password",
				})
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(authResponse{
			Success: true,
			Message: "vault unlocked",
		})
	}
}
