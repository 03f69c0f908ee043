package details

import (
	clientRoute "certihub_backend/internals/features/clients/clients/route"
	selfRoute "certihub_backend/internals/features/clients/self/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClientRoutes: staff-side client management plus client self-service.
func ClientRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler) {
	clientRoute.ClientAdminRoutes(api, db, authMw)
	selfRoute.SelfRoutes(api, db, authMw)
}
