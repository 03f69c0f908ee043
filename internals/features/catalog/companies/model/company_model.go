package model

import (
	"time"

	"certihub_backend/internals/constants"
)

type CompanyModel struct {
	ID        uint      `gorm:"column:company_id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:company_name;type:varchar(150);not null;uniqueIndex" json:"name"`
	Type      string    `gorm:"column:company_type;type:varchar(100);not null" json:"type"`
	IsActive  bool      `gorm:"column:company_is_active;not null;index" json:"active"`
	CreatedAt time.Time `gorm:"column:company_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:company_updated_at;autoUpdateTime" json:"updated_at"`
}

func (CompanyModel) TableName() string { return "companies" }

func (m CompanyModel) Status() constants.ActiveStatus { return constants.ActiveStatus(m.IsActive) }
