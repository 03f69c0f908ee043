// file: internals/features/users/auth/route/auth_route.go
package route

import (
	controller "certihub_backend/internals/features/users/auth/controller"
	"certihub_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes mounts /auth. Logins are public; logout and me need a token.
func AuthRoutes(api fiber.Router, svc *service.AuthService, authMw fiber.Handler) {
	authController := controller.NewAuthController(svc)

	g := api.Group("/auth")
	g.Post("/login", authController.Login)
	g.Post("/login/client", authController.LoginClient)

	g.Post("/logout", authMw, authController.Logout)
	g.Get("/me", authMw, authController.Me)
}
