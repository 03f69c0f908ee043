package repository

import (
	"context"
	"errors"

	roleModel "certihub_backend/internals/features/users/roles/model"
	"certihub_backend/internals/features/users/users/model"
	helper "certihub_backend/internals/helpers"

	"gorm.io/gorm"
)

const entityUser = "User"

// UserFilter is the allow-listed set of list predicates.
type UserFilter struct {
	FullName *string // substring
	Email    *string // substring
	RoleID   *uint
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) filtered(ctx context.Context, f UserFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Table("users")
	if f.FullName != nil {
		q = q.Where("LOWER(users.user_full_name) LIKE ?", helper.LikeContains(*f.FullName))
	}
	if f.Email != nil {
		q = q.Where("LOWER(users.user_email) LIKE ?", helper.LikeContains(*f.Email))
	}
	if f.RoleID != nil {
		q = q.Where("users.user_role_id = ?", *f.RoleID)
	}
	return q
}

func (r *UserRepository) viewQuery(ctx context.Context, f UserFilter) *gorm.DB {
	return r.filtered(ctx, f).
		Select("users.user_id, users.user_full_name, users.user_email, users.user_role_id, users.user_created_at, roles.role_name, roles.role_kind").
		Joins("LEFT JOIN roles ON roles.role_id = users.user_role_id")
}

func (r *UserRepository) List(ctx context.Context, f UserFilter, limit, offset int) ([]model.UserView, error) {
	out := make([]model.UserView, 0)
	err := r.viewQuery(ctx, f).
		Order("users.user_id DESC").
		Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityUser)
}

func (r *UserRepository) Count(ctx context.Context, f UserFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, helper.WrapDBError(err, entityUser)
}

func (r *UserRepository) GetView(ctx context.Context, id uint) (*model.UserView, error) {
	var v model.UserView
	res := r.viewQuery(ctx, UserFilter{}).Where("users.user_id = ?", id).Limit(1).Scan(&v)
	if res.Error != nil {
		return nil, helper.WrapDBError(res.Error, entityUser)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFoundError("User not found")
	}
	return &v, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.UserModel, error) {
	var m model.UserModel
	if err := r.DB.WithContext(ctx).First(&m, "user_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBError(err, entityUser)
	}
	return &m, nil
}

// GetByEmail returns nil, nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var m model.UserModel
	err := r.DB.WithContext(ctx).Where("user_email = ?", email).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.WrapDBError(err, entityUser)
	}
	return &m, nil
}

func (r *UserRepository) Create(ctx context.Context, m *model.UserModel) error {
	if err := r.checkWrite(ctx, m); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Create(m).Error, entityUser)
}

func (r *UserRepository) Update(ctx context.Context, m *model.UserModel) error {
	if err := r.checkWrite(ctx, m); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Save(m).Error, entityUser)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.UserModel{}, "user_id = ?", id)
	if res.Error != nil {
		return helper.WrapDBDeleteError(res.Error, entityUser)
	}
	if res.RowsAffected == 0 {
		return helper.NewNotFoundError("User not found")
	}
	return nil
}

// checkWrite enforces email uniqueness and that the role exists.
func (r *UserRepository) checkWrite(ctx context.Context, m *model.UserModel) error {
	existing, err := r.GetByEmail(ctx, m.Email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != m.ID {
		return helper.NewDuplicateError("Email is already registered")
	}
	var n int64
	if err := r.DB.WithContext(ctx).Model(&roleModel.RoleModel{}).
		Where("role_id = ?", m.RoleID).Count(&n).Error; err != nil {
		return helper.WrapDBError(err, entityUser)
	}
	if n == 0 {
		return helper.NewReferenceError("Role does not exist")
	}
	return nil
}
