package dto

import (
	"strings"

	"certihub_backend/internals/features/catalog/companies/model"
)

type CreateCompanyRequest struct {
	Name     string `json:"name"   validate:"required,min=2,max=150"`
	Type     string `json:"type"   validate:"required,max=100"`
	IsActive *bool  `json:"active"`
}

func (r *CreateCompanyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
}

// ToModel: new companies start active unless told otherwise.
func (r CreateCompanyRequest) ToModel() model.CompanyModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.CompanyModel{Name: r.Name, Type: r.Type, IsActive: active}
}

type UpdateCompanyRequest struct {
	Name     *string `json:"name"   validate:"omitempty,min=2,max=150"`
	Type     *string `json:"type"   validate:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"active"`
}

func (r *UpdateCompanyRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Type != nil {
		v := strings.TrimSpace(*r.Type)
		r.Type = &v
	}
}

func (r UpdateCompanyRequest) ApplyToModel(m *model.CompanyModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Type != nil {
		m.Type = *r.Type
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}
