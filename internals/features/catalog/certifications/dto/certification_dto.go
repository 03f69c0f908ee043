package dto

import (
	"strings"

	"certihub_backend/internals/features/catalog/certifications/model"
)

// PhotoField is the multipart field carrying the certification photo.
const PhotoField = "certification_photo"

type CreateCertificationRequest struct {
	Name      string `json:"name"       form:"name"       validate:"required,min=2,max=150"`
	CompanyID uint   `json:"company_id" form:"company_id" validate:"required"`
	IsActive  *bool  `json:"active"     form:"active"`
}

func (r *CreateCertificationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateCertificationRequest) ToModel() model.CertificationModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.CertificationModel{Name: r.Name, CompanyID: r.CompanyID, IsActive: active}
}

type UpdateCertificationRequest struct {
	Name      *string `json:"name"       form:"name"       validate:"omitempty,min=2,max=150"`
	CompanyID *uint   `json:"company_id" form:"company_id" validate:"omitempty,gt=0"`
	IsActive  *bool   `json:"active"     form:"active"`
}

func (r *UpdateCertificationRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
}

func (r UpdateCertificationRequest) ApplyToModel(m *model.CertificationModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.CompanyID != nil {
		m.CompanyID = *r.CompanyID
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

// AssignClientRequest is the body of POST /certifications/:id/clients.
type AssignClientRequest struct {
	ClientID uint `json:"client_id" validate:"required"`
}
