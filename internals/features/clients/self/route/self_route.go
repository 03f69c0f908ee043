package route

import (
	"certihub_backend/internals/features/clients/self/controller"
	authMiddleware "certihub_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SelfRoutes mounts the client self-service endpoints under /clients.
func SelfRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler) {
	ctl := controller.NewSelfController(db)

	g := api.Group("/clients", authMw, authMiddleware.ClientOnly())
	g.Get("/my-profile", ctl.Profile)
	g.Get("/my-companies", ctl.Companies)
	g.Get("/my-certifications", ctl.Certifications)
	g.Get("/my-certification-history", ctl.CertificationHistory)
	g.Get("/my-certification/:certificationId/videos-documents", ctl.VideosAndDocuments)
}
