// file: internals/route/index.go
package routes

import (
	"time"

	"certihub_backend/internals/features/users/auth/service"
	helperAuth "certihub_backend/internals/helpers/auth"
	"certihub_backend/internals/helpers/blob"
	authMiddleware "certihub_backend/internals/middlewares/auth"
	routeDetails "certihub_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var startTime time.Time

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	DB      *gorm.DB
	Tokens  *helperAuth.TokenService
	Revoker helperAuth.Revoker
	Blob    *blob.Gateway
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	authService := service.NewAuthService(d.DB, d.Tokens, d.Revoker)
	authMw := authMiddleware.AuthMiddleware(authMiddleware.Options{
		Tokens:  d.Tokens,
		Revoker: d.Revoker,
		Checker: authService.CheckAccount,
	})

	BaseRoutes(app, d.DB)

	api := app.Group("/api")

	log.Info().Msg("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, authService, authMw)

	log.Info().Msg("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(api, d.DB, authMw)

	log.Info().Msg("[INFO] Setting up CatalogRoutes...")
	routeDetails.CatalogRoutes(api, d.DB, authMw, d.Blob)

	log.Info().Msg("[INFO] Setting up ClientRoutes...")
	routeDetails.ClientRoutes(api, d.DB, authMw)

	app.Use(notFound)
}
