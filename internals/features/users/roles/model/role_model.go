package model

import (
	"time"

	"certihub_backend/internals/constants"
)

type RoleModel struct {
	ID        uint      `gorm:"column:role_id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:role_name;type:varchar(50);not null;uniqueIndex" json:"name"`
	Kind      string    `gorm:"column:role_kind;type:varchar(20);not null" json:"kind"`
	CreatedAt time.Time `gorm:"column:role_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:role_updated_at;autoUpdateTime" json:"updated_at"`
}

func (RoleModel) TableName() string { return "roles" }

// EffectiveKind falls back to reviewer for rows without a recognised kind.
func (r RoleModel) EffectiveKind() string {
	if constants.IsRoleKind(r.Kind) {
		return r.Kind
	}
	return constants.RoleReviewer
}
