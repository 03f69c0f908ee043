package route

import (
	"certihub_backend/internals/features/clients/clients/controller"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClientAdminRoutes mounts /admin/clients: reads for reviewers and
// administrators, writes for administrators.
func ClientAdminRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler) {
	ctl := controller.NewClientController(db)
	adminOnly := authMiddleware.AdministratorOnly()

	g := api.Group("/admin/clients", authMw, authMiddleware.ReviewerOrAdministrator())
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Get("/:id/companies", ctl.Companies)
	g.Get("/:id/certifications", ctl.Certifications)

	g.Post("/", adminOnly, ctl.Create)
	g.Put("/:id", adminOnly, ctl.Update)
	g.Delete("/:id", adminOnly, ctl.ToggleStatus)
	g.Post("/:id/companies", adminOnly, ctl.LinkCompany)
	g.Delete("/:clientId/companies/:companyId", adminOnly, ctl.UnlinkCompany)
}
