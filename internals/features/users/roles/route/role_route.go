package route

import (
	"certihub_backend/internals/features/users/roles/controller"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoleRoutes: reads are public, writes administrator only.
func RoleRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler) {
	ctl := controller.NewRoleController(db)
	adminOnly := authMiddleware.AdministratorOnly()

	g := api.Group("/roles")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", authMw, adminOnly, ctl.Create)
	g.Put("/:id", authMw, adminOnly, ctl.Update)
	g.Delete("/:id", authMw, adminOnly, ctl.Delete)
}
