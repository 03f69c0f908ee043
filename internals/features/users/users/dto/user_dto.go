package dto

import (
	"strings"

	"certihub_backend/internals/features/users/users/model"
)

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=150"`
	Email    string `json:"email"     validate:"required,email,max=150"`
	Password string `json:"password"  validate:"required,min=6,max=72"`
	RoleID   uint   `json:"role_id"   validate:"required"`
}

func (r *CreateUserRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r CreateUserRequest) ToModel(passwordHash string) model.UserModel {
	return model.UserModel{
		FullName:     r.FullName,
		Email:        r.Email,
		PasswordHash: passwordHash,
		RoleID:       r.RoleID,
	}
}

// UpdateUserRequest: only non-nil fields overwrite.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=150"`
	Email    *string `json:"email"     validate:"omitempty,email,max=150"`
	Password *string `json:"password"  validate:"omitempty,min=6,max=72"`
	RoleID   *uint   `json:"role_id"   validate:"omitempty,gt=0"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

// ApplyToModel copies supplied fields. The password, if any, must already
// be hashed by the caller.
func (r UpdateUserRequest) ApplyToModel(m *model.UserModel, passwordHash string) {
	if r.FullName != nil {
		m.FullName = *r.FullName
	}
	if r.Email != nil {
		m.Email = *r.Email
	}
	if r.RoleID != nil {
		m.RoleID = *r.RoleID
	}
	if passwordHash != "" {
		m.PasswordHash = passwordHash
	}
}
