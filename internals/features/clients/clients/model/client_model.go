package model

import (
	"time"

	"certihub_backend/internals/constants"
)

type ClientModel struct {
	ID             uint                   `gorm:"column:client_id;primaryKey;autoIncrement" json:"id"`
	FullName       string                 `gorm:"column:client_full_name;type:varchar(150);not null" json:"full_name"`
	Email          string                 `gorm:"column:client_email;type:varchar(150);not null;uniqueIndex" json:"email"`
	PasswordHash   string                 `gorm:"column:client_password;type:varchar(255);not null" json:"-"`
	ExternalID     string                 `gorm:"column:client_external_id;type:varchar(100)" json:"external_id"`
	ExternalIDType string                 `gorm:"column:client_external_id_type;type:varchar(50)" json:"external_id_type"`
	Status         constants.ClientStatus `gorm:"column:client_status;type:varchar(10);not null;index" json:"status"`
	CreatedAt      time.Time              `gorm:"column:client_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time              `gorm:"column:client_updated_at;autoUpdateTime" json:"updated_at"`
}

func (ClientModel) TableName() string { return "clients" }

func (m ClientModel) IsActive() bool { return m.Status == constants.ClientActive }
