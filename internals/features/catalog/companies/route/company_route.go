package route

import (
	"certihub_backend/internals/features/catalog/companies/controller"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CompanyRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler) {
	ctl := controller.NewCompanyController(db)
	adminOnly := authMiddleware.AdministratorOnly()

	g := api.Group("/companies", authMw)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Get("/:id/clients", authMiddleware.ReviewerOrAdministrator(), ctl.Clients)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.ToggleActive)
	g.Patch("/:id/toggle-active", adminOnly, ctl.ToggleActive)
}
