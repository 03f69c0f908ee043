package model

import (
	"time"

	"certihub_backend/internals/constants"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
)

type CertificationModel struct {
	ID        uint      `gorm:"column:certification_id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:certification_name;type:varchar(150);not null" json:"name"`
	PhotoURL  string    `gorm:"column:certification_photo_url;type:varchar(1024)" json:"photo_url"`
	CompanyID uint      `gorm:"column:certification_company_id;not null;index" json:"company_id"`
	IsActive  bool      `gorm:"column:certification_is_active;not null;index" json:"active"`
	CreatedAt time.Time `gorm:"column:certification_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:certification_updated_at;autoUpdateTime" json:"updated_at"`

	Company *companyModel.CompanyModel `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (CertificationModel) TableName() string { return "certifications" }

func (m CertificationModel) Status() constants.ActiveStatus {
	return constants.ActiveStatus(m.IsActive)
}

// CertificationView is the read shape, carrying the owning company's name.
type CertificationView struct {
	ID          uint      `gorm:"column:certification_id" json:"id"`
	Name        string    `gorm:"column:certification_name" json:"name"`
	PhotoURL    string    `gorm:"column:certification_photo_url" json:"photo_url"`
	CompanyID   uint      `gorm:"column:certification_company_id" json:"company_id"`
	CompanyName string    `gorm:"column:company_name" json:"company_name"`
	IsActive    bool      `gorm:"column:certification_is_active" json:"active"`
	CreatedAt   time.Time `gorm:"column:certification_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:certification_updated_at" json:"updated_at"`
}

// ViewColumns is the select list matching CertificationView.
const ViewColumns = "certifications.certification_id, certifications.certification_name, " +
	"certifications.certification_photo_url, certifications.certification_company_id, " +
	"certifications.certification_is_active, certifications.certification_created_at, " +
	"certifications.certification_updated_at, companies.company_name"
