package details

import (
	roleRoute "certihub_backend/internals/features/users/roles/route"
	userRoute "certihub_backend/internals/features/users/users/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserRoutes: staff roles and accounts.
func UserRoutes(api fiber.Router, db *gorm.DB, authMw fiber.Handler) {
	roleRoute.RoleRoutes(api, db, authMw)
	userRoute.UserRoutes(api, db, authMw)
}
