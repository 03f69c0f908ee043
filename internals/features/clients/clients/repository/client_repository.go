package repository

import (
	"context"
	"errors"

	"certihub_backend/internals/constants"
	"certihub_backend/internals/features/clients/clients/model"
	helper "certihub_backend/internals/helpers"

	"gorm.io/gorm"
)

const entityClient = "Client"

type ClientFilter struct {
	FullName *string // substring
	Email    *string // substring
	Status   *constants.ClientStatus
}

type ClientRepository struct {
	DB *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) filtered(ctx context.Context, f ClientFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&model.ClientModel{})
	if f.FullName != nil {
		q = q.Where("LOWER(client_full_name) LIKE ?", helper.LikeContains(*f.FullName))
	}
	if f.Email != nil {
		q = q.Where("LOWER(client_email) LIKE ?", helper.LikeContains(*f.Email))
	}
	if f.Status != nil {
		q = q.Where("client_status = ?", *f.Status)
	}
	return q
}

func (r *ClientRepository) List(ctx context.Context, f ClientFilter, limit, offset int) ([]model.ClientModel, error) {
	out := make([]model.ClientModel, 0)
	err := r.filtered(ctx, f).
		Order("client_id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, helper.WrapDBError(err, entityClient)
}

func (r *ClientRepository) Count(ctx context.Context, f ClientFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, helper.WrapDBError(err, entityClient)
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*model.ClientModel, error) {
	var m model.ClientModel
	if err := r.DB.WithContext(ctx).First(&m, "client_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBError(err, entityClient)
	}
	return &m, nil
}

// GetByEmail returns nil, nil when absent.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*model.ClientModel, error) {
	var m model.ClientModel
	err := r.DB.WithContext(ctx).Where("client_email = ?", email).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.WrapDBError(err, entityClient)
	}
	return &m, nil
}

func (r *ClientRepository) Create(ctx context.Context, m *model.ClientModel) error {
	if err := r.ensureEmailFree(ctx, m.Email, 0); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Create(m).Error, entityClient)
}

func (r *ClientRepository) Update(ctx context.Context, m *model.ClientModel) error {
	if err := r.ensureEmailFree(ctx, m.Email, m.ID); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Save(m).Error, entityClient)
}

// ToggleStatus flips active/inactive. Client "deletion" is this toggle.
func (r *ClientRepository) ToggleStatus(ctx context.Context, id uint) (*model.ClientModel, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := m.Status.Toggle()
	if err := r.DB.WithContext(ctx).Model(m).Update("client_status", next).Error; err != nil {
		return nil, helper.WrapDBError(err, entityClient)
	}
	m.Status = next
	return m, nil
}

func (r *ClientRepository) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := r.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return helper.NewDuplicateError("Email is already registered")
	}
	return nil
}
