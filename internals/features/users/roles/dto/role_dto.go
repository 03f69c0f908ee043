package dto

import (
	"strings"

	"certihub_backend/internals/constants"
	"certihub_backend/internals/features/users/roles/model"
)

type CreateRoleRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
	Kind string `json:"kind" validate:"omitempty,oneof=administrator reviewer"`
}

func (r *CreateRoleRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))
}

func (r CreateRoleRequest) ToModel() model.RoleModel {
	kind := r.Kind
	if kind == "" {
		kind = constants.RoleReviewer
	}
	return model.RoleModel{Name: r.Name, Kind: kind}
}

type UpdateRoleRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=50"`
	Kind *string `json:"kind" validate:"omitempty,oneof=administrator reviewer"`
}

func (r *UpdateRoleRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Kind != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Kind))
		r.Kind = &v
	}
}

func (r UpdateRoleRequest) ApplyToModel(m *model.RoleModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Kind != nil {
		m.Kind = *r.Kind
	}
}
