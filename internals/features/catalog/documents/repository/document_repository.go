package repository

import (
	"context"

	"certihub_backend/internals/features/catalog/documents/model"
	videoModel "certihub_backend/internals/features/catalog/videos/model"
	helper "certihub_backend/internals/helpers"

	"gorm.io/gorm"
)

const entityDocument = "Document"

type DocumentFilter struct {
	Name    *string // substring
	VideoID *uint
}

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) filtered(ctx context.Context, f DocumentFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).
		Table("documents").
		Joins("LEFT JOIN videos ON videos.video_id = documents.document_video_id")
	if f.Name != nil {
		q = q.Where("LOWER(documents.document_name) LIKE ?", helper.LikeContains(*f.Name))
	}
	if f.VideoID != nil {
		q = q.Where("documents.document_video_id = ?", *f.VideoID)
	}
	return q
}

func (r *DocumentRepository) List(ctx context.Context, f DocumentFilter, limit, offset int) ([]model.DocumentView, error) {
	out := make([]model.DocumentView, 0)
	err := r.filtered(ctx, f).
		Select(model.ViewColumns).
		Order("documents.document_id DESC").
		Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityDocument)
}

func (r *DocumentRepository) Count(ctx context.Context, f DocumentFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, helper.WrapDBError(err, entityDocument)
}

// ListByVideos groups the documents of several videos by video id.
func (r *DocumentRepository) ListByVideos(ctx context.Context, videoIDs []uint) (map[uint][]model.DocumentView, error) {
	out := make(map[uint][]model.DocumentView, len(videoIDs))
	if len(videoIDs) == 0 {
		return out, nil
	}
	rows := make([]model.DocumentView, 0)
	err := r.filtered(ctx, DocumentFilter{}).
		Select(model.ViewColumns).
		Where("documents.document_video_id IN ?", videoIDs).
		Order("documents.document_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, helper.WrapDBError(err, entityDocument)
	}
	for _, d := range rows {
		out[d.VideoID] = append(out[d.VideoID], d)
	}
	return out, nil
}

func (r *DocumentRepository) GetView(ctx context.Context, id uint) (*model.DocumentView, error) {
	var v model.DocumentView
	res := r.filtered(ctx, DocumentFilter{}).
		Select(model.ViewColumns).
		Where("documents.document_id = ?", id).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, helper.WrapDBError(res.Error, entityDocument)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFoundError("Document not found")
	}
	return &v, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*model.DocumentModel, error) {
	var m model.DocumentModel
	if err := r.DB.WithContext(ctx).First(&m, "document_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBError(err, entityDocument)
	}
	return &m, nil
}

// Video returns the parent video, or a Reference error when it is missing.
func (r *DocumentRepository) Video(ctx context.Context, videoID uint) (*videoModel.VideoModel, error) {
	var v videoModel.VideoModel
	err := r.DB.WithContext(ctx).First(&v, "video_id = ?", videoID).Error
	if helper.ClassifyDBError(err) == helper.KindNotFound {
		return nil, helper.NewReferenceError("Video does not exist")
	}
	if err != nil {
		return nil, helper.WrapDBError(err, entityDocument)
	}
	return &v, nil
}

func (r *DocumentRepository) Create(ctx context.Context, m *model.DocumentModel) error {
	if _, err := r.Video(ctx, m.VideoID); err != nil {
		return err
	}
	return helper.WrapDBError(r.DB.WithContext(ctx).Create(m).Error, entityDocument)
}

func (r *DocumentRepository) Update(ctx context.Context, m *model.DocumentModel) error {
	if _, err := r.Video(ctx, m.VideoID); err != nil {
		return err
	}
	err := r.DB.WithContext(ctx).Model(m).Updates(map[string]any{
		"document_name":     m.Name,
		"document_url":      m.URL,
		"document_video_id": m.VideoID,
	}).Error
	return helper.WrapDBError(err, entityDocument)
}

func (r *DocumentRepository) UpdateURL(ctx context.Context, id uint, url string) error {
	err := r.DB.WithContext(ctx).Model(&model.DocumentModel{}).
		Where("document_id = ?", id).
		Update("document_url", url).Error
	return helper.WrapDBError(err, entityDocument)
}

// Delete returns the removed row so its file can be cleaned up.
func (r *DocumentRepository) Delete(ctx context.Context, id uint) (*model.DocumentModel, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(&model.DocumentModel{}, "document_id = ?", id).Error; err != nil {
		return nil, helper.WrapDBDeleteError(err, entityDocument)
	}
	return m, nil
}
