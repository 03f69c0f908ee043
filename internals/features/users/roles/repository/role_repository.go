package repository

import (
	"context"
	"errors"

	"certihub_backend/internals/features/users/roles/model"
	userModel "certihub_backend/internals/features/users/users/model"
	helper "certihub_backend/internals/helpers"

	"gorm.io/gorm"
)

const entityRole = "Role"

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) List(ctx context.Context) ([]model.RoleModel, error) {
	out := make([]model.RoleModel, 0)
	err := r.DB.WithContext(ctx).Order("role_id ASC").Find(&out).Error
	return out, helper.WrapDBError(err, entityRole)
}

func (r *RoleRepository) GetByID(ctx context.Context, id uint) (*model.RoleModel, error) {
	var m model.RoleModel
	if err := r.DB.WithContext(ctx).First(&m, "role_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBError(err, entityRole)
	}
	return &m, nil
}

// GetByName returns nil, nil when no role has that name.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*model.RoleModel, error) {
	var m model.RoleModel
	err := r.DB.WithContext(ctx).Where("LOWER(role_name) = LOWER(?)", name).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.WrapDBError(err, entityRole)
	}
	return &m, nil
}

func (r *RoleRepository) Create(ctx context.Context, m *model.RoleModel) error {
	if err := r.ensureNameFree(ctx, m.Name, 0); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Create(m).Error, entityRole)
}

func (r *RoleRepository) Update(ctx context.Context, m *model.RoleModel) error {
	if err := r.ensureNameFree(ctx, m.Name, m.ID); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Save(m).Error, entityRole)
}

// Delete refuses while any user still holds the role. The users.user_role_id
// foreign key backs the check inside the same transaction.
func (r *RoleRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role model.RoleModel
		if err := tx.First(&role, "role_id = ?", id).Error; err != nil {
			return helper.WrapDBError(err, entityRole)
		}
		var n int64
		if err := tx.Model(&userModel.UserModel{}).
			Where("user_role_id = ?", id).Count(&n).Error; err != nil {
			return helper.WrapDBError(err, entityRole)
		}
		if n > 0 {
			return helper.NewReferencedElsewhereError("Cannot delete role because it is assigned to users")
		}
		err := tx.Delete(&model.RoleModel{}, "role_id = ?", id).Error
		return helper.WrapDBDeleteError(err, entityRole)
	})
}

func (r *RoleRepository) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return helper.NewDuplicateError("A role with that name already exists")
	}
	return nil
}
