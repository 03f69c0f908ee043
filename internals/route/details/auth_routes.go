package details

import (
	authRoute "certihub_backend/internals/features/users/auth/route"
	"certihub_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, svc *service.AuthService, authMw fiber.Handler) {
	authRoute.AuthRoutes(api, svc, authMw)
}
