// internals/middlewares/auth/claim_utils.go
package auth

import (
	"strings"

	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalPrincipal = "principal"
	LocalClaims    = "claims"
	LocalUserID    = "user_id"
	LocalUserRole  = "userRole"
	LocalKind      = "principalKind"
)

/* ======== Extractors ======== */

// extractToken reads, in order: Authorization, x-access-token, access_token cookie.
func extractToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); v != "" {
		return sanitizeToken(helperAuth.StripBearer(v))
	}
	if v := strings.TrimSpace(c.Get("x-access-token")); v != "" {
		return sanitizeToken(helperAuth.StripBearer(v))
	}
	return sanitizeToken(c.Cookies("access_token"))
}

func sanitizeToken(tok string) string {
	return strings.Trim(strings.TrimSpace(tok), "\"'")
}

/* ======== Locals ======== */

func storeClaimsToLocals(c *fiber.Ctx, claims *helperAuth.Claims) {
	p := claims.Principal()
	c.Locals(LocalPrincipal, p)
	c.Locals(LocalClaims, claims)
	c.Locals(LocalUserID, p.ID)
	c.Locals(LocalKind, p.Kind)
	if p.Role != "" {
		c.Locals(LocalUserRole, p.Role)
	}
}

// PrincipalFrom returns the authenticated principal, if any.
func PrincipalFrom(c *fiber.Ctx) (helperAuth.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(helperAuth.Principal)
	return p, ok
}

func ClaimsFrom(c *fiber.Ctx) (*helperAuth.Claims, bool) {
	cl, ok := c.Locals(LocalClaims).(*helperAuth.Claims)
	return cl, ok && cl != nil
}
