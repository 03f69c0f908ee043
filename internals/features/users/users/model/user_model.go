package model

import (
	"time"

	roleModel "certihub_backend/internals/features/users/roles/model"
)

type UserModel struct {
	ID           uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"id"`
	FullName     string    `gorm:"column:user_full_name;type:varchar(150);not null" json:"full_name"`
	Email        string    `gorm:"column:user_email;type:varchar(150);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:user_password;type:varchar(255);not null" json:"-"`
	RoleID       uint      `gorm:"column:user_role_id;not null;index" json:"role_id"`
	CreatedAt    time.Time `gorm:"column:user_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"updated_at"`

	Role *roleModel.RoleModel `gorm:"foreignKey:RoleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (UserModel) TableName() string { return "users" }

// UserView is the list/detail read shape: the user plus its role.
type UserView struct {
	ID        uint      `gorm:"column:user_id" json:"id"`
	FullName  string    `gorm:"column:user_full_name" json:"full_name"`
	Email     string    `gorm:"column:user_email" json:"email"`
	RoleID    uint      `gorm:"column:user_role_id" json:"role_id"`
	RoleName  string    `gorm:"column:role_name" json:"role_name"`
	RoleKind  string    `gorm:"column:role_kind" json:"role_kind"`
	CreatedAt time.Time `gorm:"column:user_created_at" json:"created_at"`
}
