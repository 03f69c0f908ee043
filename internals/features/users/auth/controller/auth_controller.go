package controller

import (
	"strings"

	"certihub_backend/internals/features/users/auth/service"
	helper "certihub_backend/internals/helpers"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func parseLogin(c *fiber.Ctx) (LoginRequest, error) {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return req, helper.NewValidationError("Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := helper.ValidateStruct(req); err != nil {
		return req, err
	}
	return req, nil
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	req, err := parseLogin(c)
	if err != nil {
		return helper.JsonError(c, err)
	}
	res, err := ac.Service.LoginStaff(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/login/client
func (ac *AuthController) LoginClient(c *fiber.Ctx) error {
	req, err := parseLogin(c)
	if err != nil {
		return helper.JsonError(c, err)
	}
	res, err := ac.Service.LoginClient(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Login successful", res)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	claims, _ := authMiddleware.ClaimsFrom(c)
	if err := ac.Service.Logout(c.UserContext(), claims); err != nil {
		return helper.JsonError(c, err)
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logout successful", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	p, ok := authMiddleware.PrincipalFrom(c)
	if !ok {
		return helper.JsonError(c, helper.NewAuthenticationError("Unauthorized"))
	}
	profile, err := ac.Service.Me(c.UserContext(), p)
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.JsonOK(c, "Profile retrieved", fiber.Map{"kind": p.Kind, "user": profile})
}
