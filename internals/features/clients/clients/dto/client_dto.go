package dto

import (
	"strings"

	"certihub_backend/internals/constants"
	"certihub_backend/internals/features/clients/clients/model"
)

type CreateClientRequest struct {
	FullName       string `json:"full_name"        validate:"required,min=2,max=150"`
	Email          string `json:"email"            validate:"required,email,max=150"`
	Password       string `json:"password"         validate:"required,min=6,max=72"`
	ExternalID     string `json:"external_id"      validate:"omitempty,max=100"`
	ExternalIDType string `json:"external_id_type" validate:"omitempty,max=50"`
	Status         string `json:"status"           validate:"omitempty,oneof=active inactive"`
}

func (r *CreateClientRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ExternalID = strings.TrimSpace(r.ExternalID)
	r.ExternalIDType = strings.TrimSpace(r.ExternalIDType)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

func (r CreateClientRequest) ToModel(passwordHash string) model.ClientModel {
	status := constants.ClientStatus(r.Status)
	if !status.Valid() {
		status = constants.ClientActive
	}
	return model.ClientModel{
		FullName:       r.FullName,
		Email:          r.Email,
		PasswordHash:   passwordHash,
		ExternalID:     r.ExternalID,
		ExternalIDType: r.ExternalIDType,
		Status:         status,
	}
}

type UpdateClientRequest struct {
	FullName       *string `json:"full_name"        validate:"omitempty,min=2,max=150"`
	Email          *string `json:"email"            validate:"omitempty,email,max=150"`
	Password       *string `json:"password"         validate:"omitempty,min=6,max=72"`
	ExternalID     *string `json:"external_id"      validate:"omitempty,max=100"`
	ExternalIDType *string `json:"external_id_type" validate:"omitempty,max=50"`
	Status         *string `json:"status"           validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateClientRequest) Normalize() {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	r.FullName = trim(r.FullName)
	r.ExternalID = trim(r.ExternalID)
	r.ExternalIDType = trim(r.ExternalIDType)
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
	if r.Status != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &v
	}
}

func (r UpdateClientRequest) ApplyToModel(m *model.ClientModel, passwordHash string) {
	if r.FullName != nil {
		m.FullName = *r.FullName
	}
	if r.Email != nil {
		m.Email = *r.Email
	}
	if r.ExternalID != nil {
		m.ExternalID = *r.ExternalID
	}
	if r.ExternalIDType != nil {
		m.ExternalIDType = *r.ExternalIDType
	}
	if r.Status != nil {
		m.Status = constants.ClientStatus(*r.Status)
	}
	if passwordHash != "" {
		m.PasswordHash = passwordHash
	}
}

// LinkCompanyRequest is the body of POST /admin/clients/:id/companies.
type LinkCompanyRequest struct {
	CompanyID uint `json:"company_id" validate:"required"`
}
