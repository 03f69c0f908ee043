package details

import (
	certificationRoute "certihub_backend/internals/features/catalog/certifications/route"
	companyRoute "certihub_backend/internals/features/catalog/companies/route"
	documentRoute "certihub_backend/internals/features/catalog/documents/route"
	videoRoute "certihub_backend/internals/features/catalog/videos/route"
	"certihub_backend/internals/helpers/blob"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogRoutes: companies, certifications and their media.
func CatalogRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler, gw *blob.Gateway) {
	companyRoute.CompanyRoutes(api, db, authMw)
	certificationRoute.CertificationRoutes(api, db, authMw, gw)
	videoRoute.VideoRoutes(api, db, authMw, gw)
	documentRoute.DocumentRoutes(api, db, authMw, gw)
}
