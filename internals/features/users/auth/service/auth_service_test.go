package service

import (
	"context"
	"testing"
	"time"

	"certihub_backend/internals/constants"
	database "certihub_backend/internals/databases"
	clientModel "certihub_backend/internals/features/clients/clients/model"
	roleModel "certihub_backend/internals/features/users/roles/model"
	userModel "certihub_backend/internals/features/users/users/model"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	tokens := helperAuth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(db, tokens, helperAuth.NewDBRevoker(db)), db
}

func seedStaff(t *testing.T, db *gorm.DB, email, kind string) userModel.UserModel {
	t.Helper()
	role := roleModel.RoleModel{Name: "role-" + email, Kind: kind}
	require.NoError(t, db.Create(&role).Error)
	hash, err := helperAuth.HashPassword("pass123")
	require.NoError(t, err)
	u := userModel.UserModel{FullName: "Staff", Email: email, PasswordHash: hash, RoleID: role.ID}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedClient(t *testing.T, db *gorm.DB, email string, status constants.ClientStatus) clientModel.ClientModel {
	t.Helper()
	hash, err := helperAuth.HashPassword("pass123")
	require.NoError(t, err)
	c := clientModel.ClientModel{FullName: "Client", Email: email, PasswordHash: hash, Status: status}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestLoginStaff(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	seedStaff(t, db, "admin@example.com", constants.RoleAdministrator)

	res, err := s.LoginStaff(ctx, "  ADMIN@example.com ", "pass123")
	require.NoError(t, err)
	assert.Equal(t, constants.KindStaff, res.Kind)

	claims, err := s.Tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdministrator, claims.Role)

	_, err = s.LoginStaff(ctx, "admin@example.com", "wrong")
	assert.True(t, helper.IsKind(err, helper.KindAuthentication))

	_, err = s.LoginStaff(ctx, "nobody@example.com", "pass123")
	assert.True(t, helper.IsKind(err, helper.KindAuthentication))
}

func TestLoginStaffRoleWithoutKindIsReviewer(t *testing.T) {
	s, db := newService(t)
	seedStaff(t, db, "legacy@example.com", "")

	res, err := s.LoginStaff(context.Background(), "legacy@example.com", "pass123")
	require.NoError(t, err)
	claims, err := s.Tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleReviewer, claims.Role)
}

func TestLoginClientInactive(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	seedClient(t, db, "on@example.com", constants.ClientActive)
	seedClient(t, db, "off@example.com", constants.ClientInactive)

	res, err := s.LoginClient(ctx, "on@example.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, constants.KindClient, res.Kind)

	// wrong password never reveals the account state
	_, err = s.LoginClient(ctx, "off@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, constants.ErrInvalidCredentials, err.(*helper.AppError).Message)

	_, err = s.LoginClient(ctx, "off@example.com", "pass123")
	require.Error(t, err)
	ae := err.(*helper.AppError)
	assert.Equal(t, helper.KindAuthentication, ae.Kind)
	assert.Equal(t, "Account inactive", ae.ResponseTitle())
	assert.Equal(t, constants.ErrAccountInactive, ae.Message)
}

func TestCheckAccount(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	admin := seedStaff(t, db, "admin@example.com", constants.RoleAdministrator)
	client := seedClient(t, db, "c@example.com", constants.ClientActive)

	assert.NoError(t, s.CheckAccount(ctx, helperAuth.Principal{ID: admin.ID, Kind: constants.KindStaff, Role: constants.RoleAdministrator}))
	assert.Error(t, s.CheckAccount(ctx, helperAuth.Principal{ID: admin.ID, Kind: constants.KindStaff, Role: constants.RoleReviewer}))
	assert.Error(t, s.CheckAccount(ctx, helperAuth.Principal{ID: 999, Kind: constants.KindStaff, Role: constants.RoleAdministrator}))

	p := helperAuth.Principal{ID: client.ID, Kind: constants.KindClient}
	assert.NoError(t, s.CheckAccount(ctx, p))
	require.NoError(t, db.Model(&client).Update("client_status", constants.ClientInactive).Error)
	assert.True(t, helper.IsKind(s.CheckAccount(ctx, p), helper.KindAuthentication))
}

func TestLogoutRevokesToken(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	seedClient(t, db, "c@example.com", constants.ClientActive)

	res, err := s.LoginClient(ctx, "c@example.com", "pass123")
	require.NoError(t, err)
	claims, err := s.Tokens.Validate(res.Token)
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, claims))
	revoked, err := s.Revoker.IsRevoked(ctx, claims.RegisteredClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMe(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()
	admin := seedStaff(t, db, "admin@example.com", constants.RoleAdministrator)

	me, err := s.Me(ctx, helperAuth.Principal{ID: admin.ID, Kind: constants.KindStaff, Role: constants.RoleAdministrator})
	require.NoError(t, err)
	profile := me.(StaffProfile)
	assert.Equal(t, "admin@example.com", profile.Email)
	assert.Equal(t, constants.RoleAdministrator, profile.Role)

	_, err = s.Me(ctx, helperAuth.Principal{ID: 404, Kind: constants.KindClient})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}
