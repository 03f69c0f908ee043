package repository

import (
	"context"
	"testing"

	"certihub_backend/internals/constants"
	database "certihub_backend/internals/databases"
	"certihub_backend/internals/features/users/roles/model"
	userModel "certihub_backend/internals/features/users/users/model"
	helper "certihub_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleDeleteGuard(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	r := NewRoleRepository(db)
	ctx := context.Background()

	admin := &model.RoleModel{Name: "Administrator", Kind: constants.RoleAdministrator}
	require.NoError(t, r.Create(ctx, admin))
	assert.True(t, helper.IsKind(r.Create(ctx, &model.RoleModel{Name: "administrator", Kind: constants.RoleReviewer}), helper.KindDuplicate))

	spare := &model.RoleModel{Name: "Spare", Kind: constants.RoleReviewer}
	require.NoError(t, r.Create(ctx, spare))

	require.NoError(t, db.Create(&userModel.UserModel{FullName: "Root", Email: "root@example.com", PasswordHash: "h", RoleID: admin.ID}).Error)

	err = r.Delete(ctx, admin.ID)
	assert.True(t, helper.IsKind(err, helper.KindReferencedElsewhere))

	require.NoError(t, r.Delete(ctx, spare.ID))
	assert.True(t, helper.IsKind(r.Delete(ctx, spare.ID), helper.KindNotFound))

	roles, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
}

func TestEffectiveKind(t *testing.T) {
	assert.Equal(t, constants.RoleAdministrator, model.RoleModel{Kind: constants.RoleAdministrator}.EffectiveKind())
	assert.Equal(t, constants.RoleReviewer, model.RoleModel{Kind: ""}.EffectiveKind())
	assert.Equal(t, constants.RoleReviewer, model.RoleModel{ID: 1, Kind: "legacy"}.EffectiveKind())
}

func TestRoleForeignKeyBlocksRawDelete(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	role := model.RoleModel{Name: "Auditor", Kind: constants.RoleReviewer}
	require.NoError(t, db.Create(&role).Error)
	require.NoError(t, db.Create(&userModel.UserModel{FullName: "Ana", Email: "ana@example.com", PasswordHash: "h", RoleID: role.ID}).Error)

	err = db.Delete(&model.RoleModel{}, "role_id = ?", role.ID).Error
	require.Error(t, err)
	assert.True(t, helper.IsKind(helper.WrapDBDeleteError(err, "Role"), helper.KindReferencedElsewhere))

	err = db.Create(&userModel.UserModel{FullName: "Ghost", Email: "ghost@example.com", PasswordHash: "h", RoleID: 999}).Error
	require.Error(t, err)
	assert.Equal(t, helper.KindReference, helper.ClassifyDBError(err))
}
