package route

import (
	"certihub_backend/internals/features/catalog/videos/controller"
	"certihub_backend/internals/helpers/blob"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func VideoRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler, gw *blob.Gateway) {
	ctl := controller.NewVideoController(db, gw)
	staff := authMiddleware.ReviewerOrAdministrator()

	g := api.Group("/videos", authMw)
	g.Get("/", ctl.List)
	g.Get("/certification/:certificationId", ctl.ListByCertification)
	g.Get("/active-certification/:certificationId", authMiddleware.ClientOnly(), ctl.ListForClient)
	g.Get("/:id", ctl.Get)
	g.Get("/:id/documents", ctl.ListDocuments)

	g.Post("/", staff, ctl.Create)
	g.Put("/:id", staff, ctl.Update)
	g.Delete("/:id", authMiddleware.AdministratorOnly(), ctl.Delete)
}
