package auth

import (
	"certihub_backend/internals/constants"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

// Capability is what a route requires of its caller.
type Capability int

const (
	Public Capability = iota
	AnyAuthenticated
	ClientOnlyCap
	ReviewerOrAdministratorCap
	AdministratorOnlyCap
)

// Allows is the pure access decision. p is nil for anonymous callers.
func Allows(p *helperAuth.Principal, need Capability) error {
	if need == Public {
		return nil
	}
	if p == nil {
		return helper.NewAuthenticationError(constants.ErrNoTokenProvided)
	}
	switch need {
	case AnyAuthenticated:
		return nil
	case ClientOnlyCap:
		if p.IsClient() {
			return nil
		}
		return helper.NewAuthorizationError(constants.ErrClientOnly)
	case ReviewerOrAdministratorCap:
		if p.IsStaff() && (p.Role == constants.RoleReviewer || p.Role == constants.RoleAdministrator) {
			return nil
		}
		return helper.NewAuthorizationError(constants.ErrReviewerOrAdminRequired)
	case AdministratorOnlyCap:
		if p.IsStaff() && p.Role == constants.RoleAdministrator {
			return nil
		}
		return helper.NewAuthorizationError(constants.ErrAdministratorRequired)
	}
	return helper.NewAuthorizationError("Access denied")
}

// Require guards a route. It must run after AuthMiddleware; without a
// principal in Locals it rejects with 401.
func Require(need Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pp *helperAuth.Principal
		if p, ok := PrincipalFrom(c); ok {
			pp = &p
		}
		if err := Allows(pp, need); err != nil {
			return helper.JsonError(c, err)
		}
		return c.Next()
	}
}

func AdministratorOnly() fiber.Handler       { return Require(AdministratorOnlyCap) }
func ReviewerOrAdministrator() fiber.Handler { return Require(ReviewerOrAdministratorCap) }
func ClientOnly() fiber.Handler              { return Require(ClientOnlyCap) }
func Authenticated() fiber.Handler           { return Require(AnyAuthenticated) }
