package repository

import (
	"context"
	"errors"

	"certihub_backend/internals/features/catalog/companies/model"
	helper "certihub_backend/internals/helpers"

	"gorm.io/gorm"
)

const entityCompany = "Company"

type CompanyFilter struct {
	Name   *string // substring
	Type   *string
	Active *bool
}

type CompanyRepository struct {
	DB *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) filtered(ctx context.Context, f CompanyFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&model.CompanyModel{})
	if f.Name != nil {
		q = q.Where("LOWER(company_name) LIKE ?", helper.LikeContains(*f.Name))
	}
	if f.Type != nil {
		q = q.Where("company_type = ?", *f.Type)
	}
	if f.Active != nil {
		q = q.Where("company_is_active = ?", *f.Active)
	}
	return q
}

func (r *CompanyRepository) List(ctx context.Context, f CompanyFilter, limit, offset int) ([]model.CompanyModel, error) {
	out := make([]model.CompanyModel, 0)
	err := r.filtered(ctx, f).
		Order("company_id DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, helper.WrapDBError(err, entityCompany)
}

func (r *CompanyRepository) Count(ctx context.Context, f CompanyFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, helper.WrapDBError(err, entityCompany)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*model.CompanyModel, error) {
	var m model.CompanyModel
	if err := r.DB.WithContext(ctx).First(&m, "company_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBError(err, entityCompany)
	}
	return &m, nil
}

// GetByName is case-insensitive and returns nil, nil when absent.
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*model.CompanyModel, error) {
	var m model.CompanyModel
	err := r.DB.WithContext(ctx).Where("LOWER(company_name) = LOWER(?)", name).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.WrapDBError(err, entityCompany)
	}
	return &m, nil
}

func (r *CompanyRepository) Create(ctx context.Context, m *model.CompanyModel) error {
	if err := r.ensureNameFree(ctx, m.Name, 0); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Create(m).Error, entityCompany)
}

func (r *CompanyRepository) Update(ctx context.Context, m *model.CompanyModel) error {
	if err := r.ensureNameFree(ctx, m.Name, m.ID); err != nil {
		return err
	}
	err := r.DB.WithContext(ctx).Model(m).Updates(map[string]any{
		"company_name":      m.Name,
		"company_type":      m.Type,
		"company_is_active": m.IsActive,
	}).Error
	return helper.WrapDBError(err, entityCompany)
}

// ToggleActive flips company_is_active and returns the new row. Company
// "deletion" goes through here as well.
func (r *CompanyRepository) ToggleActive(ctx context.Context, id uint) (*model.CompanyModel, error) {
	res := r.DB.WithContext(ctx).Model(&model.CompanyModel{}).
		Where("company_id = ?", id).
		Update("company_is_active", gorm.Expr("NOT company_is_active"))
	if res.Error != nil {
		return nil, helper.WrapDBError(res.Error, entityCompany)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFoundError("Company not found")
	}
	return r.GetByID(ctx, id)
}

func (r *CompanyRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.CompanyModel{}).Where("company_id = ?", id).Count(&n).Error
	return n > 0, helper.WrapDBError(err, entityCompany)
}

func (r *CompanyRepository) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return helper.NewDuplicateError("A company with that name already exists")
	}
	return nil
}
