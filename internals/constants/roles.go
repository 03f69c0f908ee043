package constants

// Principal kinds carried in the token.
const (
	KindStaff  = "staff"
	KindClient = "client"
)

// Role kinds. A role row maps onto exactly one of these.
const (
	RoleAdministrator = "administrator"
	RoleReviewer      = "reviewer"
)

// Guard messages
const (
	ErrAdministratorRequired       = "Administrator role required"
	ErrReviewerOrAdminRequired     = "Reviewer or administrator role required"
	ErrClientOnly                  = "Access only for clients"
	ErrNoTokenProvided             = "No token provided"
	ErrInvalidToken                = "Invalid or expired token"
	ErrInvalidCredentials          = "Invalid username or password"
	ErrAccountInactive             = "Your account is not active. Please contact the administrator."
	ErrCertificationNotAvailable   = "The certification is not active"
	ErrCertificationNotAssigned    = "You do not have access to this certification"
	ErrCertificationAccessInactive = "Your access to this certification is inactive"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoleKinds = []string{
		RoleAdministrator,
		RoleReviewer,
	}

	AdministratorOnly = []string{
		RoleAdministrator,
	}

	ReviewerOrAdministrator = []string{
		RoleReviewer,
		RoleAdministrator,
	}
)

// IsRoleKind reports whether s is a known role kind.
func IsRoleKind(s string) bool {
	for _, k := range AllRoleKinds {
		if k == s {
			return true
		}
	}
	return false
}
