package model

import (
	"time"

	certModel "certihub_backend/internals/features/catalog/certifications/model"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
	clientModel "certihub_backend/internals/features/clients/clients/model"
)

// ClientCompanyModel links a client to a company. The pair is unique.
type ClientCompanyModel struct {
	ID        uint      `gorm:"column:client_company_id;primaryKey;autoIncrement" json:"id"`
	ClientID  uint      `gorm:"column:client_company_client_id;not null;uniqueIndex:uq_client_company,priority:1" json:"client_id"`
	CompanyID uint      `gorm:"column:client_company_company_id;not null;uniqueIndex:uq_client_company,priority:2;index" json:"company_id"`
	CreatedAt time.Time `gorm:"column:client_company_created_at;autoCreateTime" json:"created_at"`

	Client  *clientModel.ClientModel   `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Company *companyModel.CompanyModel `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ClientCompanyModel) TableName() string { return "client_companies" }

// ClientCertificationModel assigns a certification to a client. The row's
// own active flag gates visibility together with the certification's.
type ClientCertificationModel struct {
	ID              uint      `gorm:"column:client_certification_id;primaryKey;autoIncrement" json:"id"`
	ClientID        uint      `gorm:"column:client_certification_client_id;not null;uniqueIndex:uq_client_certification,priority:1" json:"client_id"`
	CertificationID uint      `gorm:"column:client_certification_certification_id;not null;uniqueIndex:uq_client_certification,priority:2;index" json:"certification_id"`
	IsActive        bool      `gorm:"column:client_certification_is_active;not null" json:"active"`
	AssignedAt      time.Time `gorm:"column:client_certification_assigned_at;not null" json:"assigned_at"`

	Client        *clientModel.ClientModel      `gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Certification *certModel.CertificationModel `gorm:"foreignKey:CertificationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ClientCertificationModel) TableName() string { return "client_certifications" }

/* ===============================
   Read shapes
=================================*/

// ClientCertificationView is a certification as seen through one client's
// assignment.
type ClientCertificationView struct {
	ID                 uint      `gorm:"column:certification_id" json:"id"`
	Name               string    `gorm:"column:certification_name" json:"name"`
	PhotoURL           string    `gorm:"column:certification_photo_url" json:"photo_url"`
	CompanyID          uint      `gorm:"column:certification_company_id" json:"company_id"`
	CompanyName        string    `gorm:"column:company_name" json:"company_name"`
	IsActive           bool      `gorm:"column:certification_is_active" json:"active"`
	AssignmentIsActive bool      `gorm:"column:client_certification_is_active" json:"assignment_active"`
	AssignedAt         time.Time `gorm:"column:client_certification_assigned_at" json:"assigned_at"`
}

// AssignedClientView is a client as seen through one certification's
// assignment.
type AssignedClientView struct {
	ID                 uint      `gorm:"column:client_id" json:"id"`
	FullName           string    `gorm:"column:client_full_name" json:"full_name"`
	Email              string    `gorm:"column:client_email" json:"email"`
	Status             string    `gorm:"column:client_status" json:"status"`
	AssignmentIsActive bool      `gorm:"column:client_certification_is_active" json:"assignment_active"`
	AssignedAt         time.Time `gorm:"column:client_certification_assigned_at" json:"assigned_at"`
}
