// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"

	"certihub_backend/internals/constants"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AccountChecker confirms the principal behind a valid token still may
// act (row exists, account active). Optional.
type AccountChecker func(ctx context.Context, p helperAuth.Principal) error

type Options struct {
	Tokens  *helperAuth.TokenService
	Revoker helperAuth.Revoker
	Checker AccountChecker
}

// AuthMiddleware fails closed: no token, bad token, revoked token or a
// failing account check all stop the request with 401 before any handler.
func AuthMiddleware(opts Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c)
		if raw == "" {
			return helper.JsonError(c, helper.NewAuthenticationError(constants.ErrNoTokenProvided))
		}

		claims, err := opts.Tokens.Validate(raw)
		if err != nil {
			log.Debug().Str("path", c.Path()).Msg("[AUTH] invalid token")
			return helper.JsonError(c, helper.NewAuthenticationError(constants.ErrInvalidToken))
		}

		if opts.Revoker != nil {
			revoked, err := opts.Revoker.IsRevoked(c.UserContext(), claims.RegisteredClaims.ID)
			if err != nil {
				log.Error().Err(err).Msg("[AUTH] revocation lookup failed")
				return helper.JsonError(c, helper.NewInternalError(err))
			}
			if revoked {
				return helper.JsonError(c, helper.NewAuthenticationError(constants.ErrInvalidToken))
			}
		}

		if opts.Checker != nil {
			if err := opts.Checker(c.UserContext(), claims.Principal()); err != nil {
				return helper.JsonError(c, err)
			}
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}
