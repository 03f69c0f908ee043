package service

import (
	"context"
	"strings"
	"time"

	"certihub_backend/internals/constants"
	authRepo "certihub_backend/internals/features/users/auth/repository"
	roleModel "certihub_backend/internals/features/users/roles/model"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

/* ==========================
   Types
========================== */

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Kind      string    `json:"kind"`
	User      any       `json:"user"`
}

// StaffProfile is what a staff member sees of themselves.
type StaffProfile struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	RoleID   uint   `json:"role_id"`
	RoleName string `json:"role_name"`
	Role     string `json:"role"`
}

type AuthService struct {
	DB      *gorm.DB
	Tokens  *helperAuth.TokenService
	Revoker helperAuth.Revoker
}

func NewAuthService(db *gorm.DB, tokens *helperAuth.TokenService, revoker helperAuth.Revoker) *AuthService {
	return &AuthService{DB: db, Tokens: tokens, Revoker: revoker}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func staffProfile(acc *authRepo.StaffAccount) StaffProfile {
	role := roleModel.RoleModel{Name: acc.RoleName, Kind: acc.RoleKind}
	return StaffProfile{
		ID:       acc.ID,
		FullName: acc.FullName,
		Email:    acc.Email,
		RoleID:   acc.RoleID,
		RoleName: acc.RoleName,
		Role:     role.EffectiveKind(),
	}
}

/* ==========================
   Login
========================== */

// LoginStaff authenticates a user. Unknown email and wrong password give
// the same error.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*LoginResult, error) {
	acc, err := authRepo.FindStaffByEmail(ctx, s.DB, normalizeEmail(email))
	if err != nil {
		return nil, helper.NewInternalError(err)
	}
	if acc == nil || !helperAuth.CheckPassword(password, acc.PasswordHash) {
		return nil, helper.NewAuthenticationError(constants.ErrInvalidCredentials)
	}

	profile := staffProfile(acc)
	token, exp, err := s.Tokens.Issue(helperAuth.Principal{
		ID:    acc.ID,
		Email: acc.Email,
		Kind:  constants.KindStaff,
		Role:  profile.Role,
	})
	if err != nil {
		return nil, helper.NewInternalError(err)
	}
	log.Info().Msgf("[AUTH][LOGIN] staff id=%d role=%s", acc.ID, profile.Role)
	return &LoginResult{Token: token, ExpiresAt: exp, Kind: constants.KindStaff, User: profile}, nil
}

// LoginClient authenticates a client. An inactive account with the right
// password is refused with its own message.
func (s *AuthService) LoginClient(ctx context.Context, email, password string) (*LoginResult, error) {
	cl, err := authRepo.FindClientByEmail(ctx, s.DB, normalizeEmail(email))
	if err != nil {
		return nil, helper.NewInternalError(err)
	}
	if cl == nil || !helperAuth.CheckPassword(password, cl.PasswordHash) {
		return nil, helper.NewAuthenticationError(constants.ErrInvalidCredentials)
	}
	if !cl.IsActive() {
		return nil, helper.NewAuthenticationError(constants.ErrAccountInactive).WithTitle("Account inactive")
	}

	token, exp, err := s.Tokens.Issue(helperAuth.Principal{
		ID:    cl.ID,
		Email: cl.Email,
		Kind:  constants.KindClient,
	})
	if err != nil {
		return nil, helper.NewInternalError(err)
	}
	log.Info().Msgf("[AUTH][LOGIN] client id=%d", cl.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, Kind: constants.KindClient, User: cl}, nil
}

/* ==========================
   Logout / Me
========================== */

// Logout revokes the token id until the token would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *helperAuth.Claims) error {
	if s.Revoker == nil || claims == nil {
		return nil
	}
	until := time.Now().Add(s.Tokens.TTL())
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.Revoker.Revoke(ctx, claims.RegisteredClaims.ID, until); err != nil {
		return helper.NewInternalError(err)
	}
	log.Info().Msgf("[AUTH][LOGOUT] %s id=%d", claims.Kind, claims.ID)
	return nil
}

// Me loads the caller's current profile.
func (s *AuthService) Me(ctx context.Context, p helperAuth.Principal) (any, error) {
	switch {
	case p.IsStaff():
		acc, err := authRepo.FindStaffByID(ctx, s.DB, p.ID)
		if err != nil {
			return nil, helper.NewInternalError(err)
		}
		if acc == nil {
			return nil, helper.NewNotFoundError("User not found")
		}
		return staffProfile(acc), nil
	case p.IsClient():
		cl, err := authRepo.FindClientByID(ctx, s.DB, p.ID)
		if err != nil {
			return nil, helper.NewInternalError(err)
		}
		if cl == nil {
			return nil, helper.NewNotFoundError("Client not found")
		}
		return cl, nil
	}
	return nil, helper.NewAuthenticationError(constants.ErrInvalidToken)
}

// CheckAccount is the guard's account check: the principal's row must
// still exist. Staff must still hold the role the token names; clients
// must still be active.
func (s *AuthService) CheckAccount(ctx context.Context, p helperAuth.Principal) error {
	if p.IsStaff() {
		acc, err := authRepo.FindStaffByID(ctx, s.DB, p.ID)
		if err != nil {
			return helper.NewInternalError(err)
		}
		if acc == nil || staffProfile(acc).Role != p.Role {
			return helper.NewAuthenticationError(constants.ErrInvalidToken)
		}
		return nil
	}

	cl, err := authRepo.FindClientByID(ctx, s.DB, p.ID)
	if err != nil {
		return helper.NewInternalError(err)
	}
	if cl == nil {
		return helper.NewAuthenticationError(constants.ErrInvalidToken)
	}
	if !cl.IsActive() {
		return helper.NewAuthenticationError(constants.ErrAccountInactive).WithTitle("Account inactive")
	}
	return nil
}
