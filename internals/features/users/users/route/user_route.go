package route

import (
	"certihub_backend/internals/features/users/users/controller"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserRoutes: staff account management, administrator only.
func UserRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler) {
	ctl := controller.NewUserController(db)

	g := api.Group("/users", authMw, authMiddleware.AdministratorOnly())
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
