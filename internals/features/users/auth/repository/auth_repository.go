// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"

	clientModel "certihub_backend/internals/features/clients/clients/model"
	userModel "certihub_backend/internals/features/users/users/model"

	"gorm.io/gorm"
)

/* ====================== STAFF ====================== */

// StaffAccount is a user row with the role it holds.
type StaffAccount struct {
	userModel.UserModel
	RoleName string `gorm:"column:role_name"`
	RoleKind string `gorm:"column:role_kind"`
}

func staffQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("users").
		Select("users.*, roles.role_name, roles.role_kind").
		Joins("LEFT JOIN roles ON roles.role_id = users.user_role_id")
}

// FindStaffByEmail returns nil, nil when no user has that email.
func FindStaffByEmail(ctx context.Context, db *gorm.DB, email string) (*StaffAccount, error) {
	var acc StaffAccount
	res := staffQuery(ctx, db).Where("users.user_email = ?", email).Limit(1).Scan(&acc)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &acc, nil
}

func FindStaffByID(ctx context.Context, db *gorm.DB, id uint) (*StaffAccount, error) {
	var acc StaffAccount
	res := staffQuery(ctx, db).Where("users.user_id = ?", id).Limit(1).Scan(&acc)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &acc, nil
}

/* ====================== CLIENT ====================== */

func FindClientByEmail(ctx context.Context, db *gorm.DB, email string) (*clientModel.ClientModel, error) {
	var c clientModel.ClientModel
	err := db.WithContext(ctx).Where("client_email = ?", email).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func FindClientByID(ctx context.Context, db *gorm.DB, id uint) (*clientModel.ClientModel, error) {
	var c clientModel.ClientModel
	err := db.WithContext(ctx).Where("client_id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
