package dto

import (
	"strings"

	"certihub_backend/internals/features/catalog/documents/model"
)

// FileField is the multipart field carrying the document.
const FileField = "document"

type CreateDocumentRequest struct {
	Name    string `json:"name"     form:"name"     validate:"required,min=2,max=150"`
	VideoID uint   `json:"video_id" form:"video_id" validate:"required"`
}

func (r *CreateDocumentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateDocumentRequest) ToModel() model.DocumentModel {
	return model.DocumentModel{Name: r.Name, VideoID: r.VideoID}
}

type UpdateDocumentRequest struct {
	Name    *string `json:"name"     form:"name"     validate:"omitempty,min=2,max=150"`
	VideoID *uint   `json:"video_id" form:"video_id" validate:"omitempty,gt=0"`
}

func (r *UpdateDocumentRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
}

func (r UpdateDocumentRequest) ApplyToModel(m *model.DocumentModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.VideoID != nil {
		m.VideoID = *r.VideoID
	}
}
