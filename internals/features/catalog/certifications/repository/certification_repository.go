package repository

import (
	"context"

	"certihub_backend/internals/features/catalog/certifications/model"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
	videoModel "certihub_backend/internals/features/catalog/videos/model"
	relModel "certihub_backend/internals/features/relations/model"
	helper "certihub_backend/internals/helpers"

	"gorm.io/gorm"
)

const entityCertification = "Certification"

type CertificationFilter struct {
	Name        *string // substring
	CompanyID   *uint
	CompanyName *string // substring
	Active      *bool
}

type CertificationRepository struct {
	DB *gorm.DB
}

func NewCertificationRepository(db *gorm.DB) *CertificationRepository {
	return &CertificationRepository{DB: db}
}

func (r *CertificationRepository) filtered(ctx context.Context, f CertificationFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).
		Table("certifications").
		Joins("LEFT JOIN companies ON companies.company_id = certifications.certification_company_id")
	if f.Name != nil {
		q = q.Where("LOWER(certifications.certification_name) LIKE ?", helper.LikeContains(*f.Name))
	}
	if f.CompanyID != nil {
		q = q.Where("certifications.certification_company_id = ?", *f.CompanyID)
	}
	if f.CompanyName != nil {
		q = q.Where("LOWER(companies.company_name) LIKE ?", helper.LikeContains(*f.CompanyName))
	}
	if f.Active != nil {
		q = q.Where("certifications.certification_is_active = ?", *f.Active)
	}
	return q
}

func (r *CertificationRepository) List(ctx context.Context, f CertificationFilter, limit, offset int) ([]model.CertificationView, error) {
	out := make([]model.CertificationView, 0)
	err := r.filtered(ctx, f).
		Select(model.ViewColumns).
		Order("certifications.certification_id DESC").
		Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityCertification)
}

func (r *CertificationRepository) Count(ctx context.Context, f CertificationFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, helper.WrapDBError(err, entityCertification)
}

func (r *CertificationRepository) GetView(ctx context.Context, id uint) (*model.CertificationView, error) {
	var v model.CertificationView
	res := r.filtered(ctx, CertificationFilter{}).
		Select(model.ViewColumns).
		Where("certifications.certification_id = ?", id).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, helper.WrapDBError(res.Error, entityCertification)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFoundError("Certification not found")
	}
	return &v, nil
}

func (r *CertificationRepository) GetByID(ctx context.Context, id uint) (*model.CertificationModel, error) {
	var m model.CertificationModel
	if err := r.DB.WithContext(ctx).First(&m, "certification_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBError(err, entityCertification)
	}
	return &m, nil
}

func (r *CertificationRepository) Create(ctx context.Context, m *model.CertificationModel) error {
	if err := r.RequireCompany(ctx, m.CompanyID); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Create(m).Error, entityCertification)
}

func (r *CertificationRepository) Update(ctx context.Context, m *model.CertificationModel) error {
	if err := r.RequireCompany(ctx, m.CompanyID); err != nil {
		return err
	}
	err := r.DB.WithContext(ctx).Model(m).Updates(map[string]any{
		"certification_name":       m.Name,
		"certification_photo_url":  m.PhotoURL,
		"certification_company_id": m.CompanyID,
		"certification_is_active":  m.IsActive,
	}).Error
	return helper.WrapDBError(err, entityCertification)
}

func (r *CertificationRepository) UpdatePhotoURL(ctx context.Context, id uint, url string) error {
	err := r.DB.WithContext(ctx).Model(&model.CertificationModel{}).
		Where("certification_id = ?", id).
		Update("certification_photo_url", url).Error
	return helper.WrapDBError(err, entityCertification)
}

func (r *CertificationRepository) ToggleActive(ctx context.Context, id uint) (*model.CertificationModel, error) {
	res := r.DB.WithContext(ctx).Model(&model.CertificationModel{}).
		Where("certification_id = ?", id).
		Update("certification_is_active", gorm.Expr("NOT certification_is_active"))
	if res.Error != nil {
		return nil, helper.WrapDBError(res.Error, entityCertification)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFoundError("Certification not found")
	}
	return r.GetByID(ctx, id)
}

func (r *CertificationRepository) CountVideos(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&videoModel.VideoModel{}).
		Where("video_certification_id = ?", id).Count(&n).Error
	return n, helper.WrapDBError(err, entityCertification)
}

// Delete hard-deletes the certification and its client assignments. It
// refuses while any video still belongs to it. The deleted row is returned
// so the caller can clean up its photo.
func (r *CertificationRepository) Delete(ctx context.Context, id uint) (*model.CertificationModel, error) {
	var deleted model.CertificationModel
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "certification_id = ?", id).Error; err != nil {
			return helper.WrapDBError(err, entityCertification)
		}
		var n int64
		if err := tx.Model(&videoModel.VideoModel{}).
			Where("video_certification_id = ?", id).Count(&n).Error; err != nil {
			return helper.WrapDBError(err, entityCertification)
		}
		if n > 0 {
			return helper.NewReferencedElsewhereError("Cannot delete certification because it has associated videos")
		}
		if err := tx.Where("client_certification_certification_id = ?", id).
			Delete(&relModel.ClientCertificationModel{}).Error; err != nil {
			return helper.WrapDBDeleteError(err, entityCertification)
		}
		err := tx.Delete(&model.CertificationModel{}, "certification_id = ?", id).Error
		return helper.WrapDBDeleteError(err, entityCertification)
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// RequireCompany fails with a Reference error when the company does not
// exist.
func (r *CertificationRepository) RequireCompany(ctx context.Context, companyID uint) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&companyModel.CompanyModel{}).
		Where("company_id = ?", companyID).Count(&n).Error; err != nil {
		return helper.WrapDBError(err, entityCertification)
	}
	if n == 0 {
		return helper.NewReferenceError("Company does not exist")
	}
	return nil
}
