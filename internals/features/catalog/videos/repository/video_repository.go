package repository

import (
	"context"

	certModel "certihub_backend/internals/features/catalog/certifications/model"
	docModel "certihub_backend/internals/features/catalog/documents/model"
	"certihub_backend/internals/features/catalog/videos/model"
	helper "certihub_backend/internals/helpers"

	"gorm.io/gorm"
)

const entityVideo = "Video"

type VideoFilter struct {
	Name            *string // substring
	CertificationID *uint
}

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) filtered(ctx context.Context, f VideoFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).
		Table("videos").
		Joins("LEFT JOIN certifications ON certifications.certification_id = videos.video_certification_id")
	if f.Name != nil {
		q = q.Where("LOWER(videos.video_name) LIKE ?", helper.LikeContains(*f.Name))
	}
	if f.CertificationID != nil {
		q = q.Where("videos.video_certification_id = ?", *f.CertificationID)
	}
	return q
}

func (r *VideoRepository) List(ctx context.Context, f VideoFilter, limit, offset int) ([]model.VideoView, error) {
	out := make([]model.VideoView, 0)
	err := r.filtered(ctx, f).
		Select(model.ViewColumns).
		Order("videos.video_id DESC").
		Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityVideo)
}

func (r *VideoRepository) Count(ctx context.Context, f VideoFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, helper.WrapDBError(err, entityVideo)
}

// ListByCertification returns every video of a certification in upload
// order, unpaginated.
func (r *VideoRepository) ListByCertification(ctx context.Context, certificationID uint) ([]model.VideoView, error) {
	out := make([]model.VideoView, 0)
	err := r.filtered(ctx, VideoFilter{CertificationID: &certificationID}).
		Select(model.ViewColumns).
		Order("videos.video_id ASC").
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityVideo)
}

func (r *VideoRepository) GetView(ctx context.Context, id uint) (*model.VideoView, error) {
	var v model.VideoView
	res := r.filtered(ctx, VideoFilter{}).
		Select(model.ViewColumns).
		Where("videos.video_id = ?", id).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, helper.WrapDBError(res.Error, entityVideo)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFoundError("Video not found")
	}
	return &v, nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id uint) (*model.VideoModel, error) {
	var m model.VideoModel
	if err := r.DB.WithContext(ctx).First(&m, "video_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBError(err, entityVideo)
	}
	return &m, nil
}

func (r *VideoRepository) Create(ctx context.Context, m *model.VideoModel) error {
	if err := r.RequireCertification(ctx, m.CertificationID); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Create(m).Error, entityVideo)
}

func (r *VideoRepository) Update(ctx context.Context, m *model.VideoModel) error {
	if err := r.RequireCertification(ctx, m.CertificationID); err != nil {
		return err
	}
	err := r.DB.WithContext(ctx).Model(m).Updates(map[string]any{
		"video_name":             m.Name,
		"video_url":              m.URL,
		"video_duration_seconds": m.DurationSeconds,
		"video_certification_id": m.CertificationID,
	}).Error
	return helper.WrapDBError(err, entityVideo)
}

func (r *VideoRepository) UpdateURL(ctx context.Context, id uint, url string) error {
	err := r.DB.WithContext(ctx).Model(&model.VideoModel{}).
		Where("video_id = ?", id).
		Update("video_url", url).Error
	return helper.WrapDBError(err, entityVideo)
}

// Delete removes the video and every document under it in one
// transaction. It returns the deleted video and its documents' URLs.
func (r *VideoRepository) Delete(ctx context.Context, id uint) (*model.VideoModel, []string, error) {
	var (
		deleted model.VideoModel
		urls    []string
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "video_id = ?", id).Error; err != nil {
			return helper.WrapDBError(err, entityVideo)
		}
		if err := tx.Model(&docModel.DocumentModel{}).
			Where("document_video_id = ?", id).
			Pluck("document_url", &urls).Error; err != nil {
			return helper.WrapDBError(err, entityVideo)
		}
		if err := tx.Where("document_video_id = ?", id).
			Delete(&docModel.DocumentModel{}).Error; err != nil {
			return helper.WrapDBDeleteError(err, "Document")
		}
		err := tx.Delete(&model.VideoModel{}, "video_id = ?", id).Error
		return helper.WrapDBDeleteError(err, entityVideo)
	})
	if err != nil {
		return nil, nil, err
	}
	return &deleted, urls, nil
}

// RequireCertification fails with a Reference error when the certification
// does not exist.
func (r *VideoRepository) RequireCertification(ctx context.Context, certificationID uint) error {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&certModel.CertificationModel{}).
		Where("certification_id = ?", certificationID).Count(&n).Error; err != nil {
		return helper.WrapDBError(err, entityVideo)
	}
	if n == 0 {
		return helper.NewReferenceError("Certification does not exist")
	}
	return nil
}
