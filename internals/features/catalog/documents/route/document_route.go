package route

import (
	"certihub_backend/internals/features/catalog/documents/controller"
	"certihub_backend/internals/helpers/blob"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func DocumentRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler, gw *blob.Gateway) {
	ctl := controller.NewDocumentController(db, gw)
	staff := authMiddleware.ReviewerOrAdministrator()

	g := api.Group("/documents", authMw)
	g.Get("/", ctl.List)
	g.Get("/video/:videoId", ctl.ListByVideo)
	g.Get("/:id", ctl.Get)

	g.Post("/", staff, ctl.Create)
	g.Put("/:id", staff, ctl.Update)
	g.Delete("/:id", authMiddleware.AdministratorOnly(), ctl.Delete)
}
