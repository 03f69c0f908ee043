package route

import (
	"certihub_backend/internals/features/catalog/certifications/controller"
	"certihub_backend/internals/helpers/blob"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CertificationRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler, gw *blob.Gateway) {
	ctl := controller.NewCertificationController(db, gw)
	adminOnly := authMiddleware.AdministratorOnly()
	staff := authMiddleware.ReviewerOrAdministrator()

	g := api.Group("/certifications")

	// public catalogue
	g.Get("/", ctl.List)

	g.Get("/company/:companyId", authMw, ctl.ListByCompany)
	g.Get("/:id", authMw, ctl.Get)
	g.Get("/:id/videos", authMw, staff, ctl.ListVideos)
	g.Get("/:id/clients", authMw, staff, ctl.Clients)

	g.Post("/", authMw, adminOnly, ctl.Create)
	g.Put("/:id", authMw, adminOnly, ctl.Update)
	g.Delete("/:id", authMw, adminOnly, ctl.Delete)
	g.Patch("/:id/toggle-active", authMw, adminOnly, ctl.ToggleActive)

	g.Post("/:id/clients", authMw, adminOnly, ctl.AssignClient)
	g.Delete("/:id/clients/:clientId", authMw, adminOnly, ctl.UnassignClient)
	g.Patch("/:id/clients/:clientId/toggle-active", authMw, adminOnly, ctl.ToggleClientActive)
}
