package handler

import (
	"github.com/gofiber/fiber/v2"

	"studentfolio/internal/http/middleware"
	"studentfolio/internal/service"
)

// Register handles POST /api/auth/register.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"token":   res.Token,
			"user":    res.User,
		})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in loginRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := svc.Login(c.UserContext(), in.Username, in.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"token":   res.Token,
			"user":    res.User,
		})
	}
}

// UserDetails handles GET /api/auth/user/details for the authenticated user.
func UserDetails(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.GetUser(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(user)
	}
}

type forgotPasswordRequest struct {
	Username string `json:"username"`
}

// ForgotPassword handles POST /api/auth/forgot-password. The reset token is
// returned in the response body; there is no mail delivery.
func ForgotPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in forgotPasswordRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		res, err := svc.ForgotPassword(c.UserContext(), in.Username)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /api/auth/reset-password.
func ResetPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in resetPasswordRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		}

		if err := svc.ResetPassword(c.UserContext(), in.Username, in.Token, in.NewPassword); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "password updated"})
	}
}
