package helper

import (
	"testing"
	"time"

	"certihub_backend/internals/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffPrincipal() Principal {
	return Principal{ID: 7, Email: "admin@example.com", Kind: constants.KindStaff, Role: constants.RoleAdministrator}
}

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	tok, exp, err := svc.Issue(staffPrincipal())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := svc.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, staffPrincipal(), claims.Principal())
	assert.NotEmpty(t, claims.RegisteredClaims.ID)

	claims, err = svc.Validate("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
}

func TestValidateRejectsExpired(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	svc := NewTokenService("secret", time.Hour).WithClock(past)
	tok, _, err := svc.Issue(staffPrincipal())
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tok, _, err := NewTokenService("one", time.Hour).Issue(staffPrincipal())
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRejectsMalformedPrincipal(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	_, _, err := svc.Issue(Principal{ID: 1, Kind: "robot"})
	assert.Error(t, err)

	_, _, err = svc.Issue(Principal{ID: 1, Kind: constants.KindClient, Role: constants.RoleAdministrator})
	assert.Error(t, err)

	_, _, err = svc.Issue(Principal{ID: 1, Kind: constants.KindStaff, Role: "superuser"})
	assert.Error(t, err)

	_, _, err = NewTokenService("", time.Hour).Issue(staffPrincipal())
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, raw := range []string{"", "Bearer ", "abc.def.ghi"} {
		_, err := svc.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", StripBearer("Bearer abc"))
	assert.Equal(t, "abc", StripBearer("bearer   abc "))
	assert.Equal(t, "abc", StripBearer("abc"))
}
