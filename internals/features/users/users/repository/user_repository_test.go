package repository

import (
	"context"
	"testing"

	"certihub_backend/internals/constants"
	database "certihub_backend/internals/databases"
	roleModel "certihub_backend/internals/features/users/roles/model"
	"certihub_backend/internals/features/users/users/model"
	helper "certihub_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	r := NewUserRepository(db)
	ctx := context.Background()

	err = r.Create(ctx, &model.UserModel{FullName: "Ana", Email: "ana@example.com", PasswordHash: "h", RoleID: 9})
	assert.True(t, helper.IsKind(err, helper.KindReference))

	role := roleModel.RoleModel{Name: "Auditor", Kind: constants.RoleReviewer}
	require.NoError(t, db.Create(&role).Error)

	ana := &model.UserModel{FullName: "Ana", Email: "ana@example.com", PasswordHash: "h", RoleID: role.ID}
	require.NoError(t, r.Create(ctx, ana))

	err = r.Create(ctx, &model.UserModel{FullName: "Ana 2", Email: "ana@example.com", PasswordHash: "h", RoleID: role.ID})
	assert.True(t, helper.IsKind(err, helper.KindDuplicate))

	v, err := r.GetView(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Auditor", v.RoleName)
	assert.Equal(t, constants.RoleReviewer, v.RoleKind)

	q := "ANA@"
	rows, err := r.List(ctx, UserFilter{Email: &q}, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, r.Delete(ctx, ana.ID))
	assert.True(t, helper.IsKind(r.Delete(ctx, ana.ID), helper.KindNotFound))

	_, err = r.GetView(ctx, ana.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}
