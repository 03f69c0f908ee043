package dto

import (
	"strings"

	"certihub_backend/internals/features/catalog/videos/model"
)

// FileField is the multipart field carrying the video file.
const FileField = "video_file"

// CreateVideoRequest takes either a video_file upload or a video_path URL.
type CreateVideoRequest struct {
	Name            string `json:"name"             form:"name"             validate:"required,min=2,max=150"`
	CertificationID uint   `json:"certification_id" form:"certification_id" validate:"required"`
	DurationSeconds int    `json:"duration_seconds" form:"duration_seconds" validate:"gte=0"`
	VideoPath       string `json:"video_path"       form:"video_path"       validate:"omitempty,max=1024"`
}

func (r *CreateVideoRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.VideoPath = strings.TrimSpace(r.VideoPath)
}

func (r CreateVideoRequest) ToModel() model.VideoModel {
	return model.VideoModel{
		Name:            r.Name,
		URL:             r.VideoPath,
		DurationSeconds: r.DurationSeconds,
		CertificationID: r.CertificationID,
	}
}

type UpdateVideoRequest struct {
	Name            *string `json:"name"             form:"name"             validate:"omitempty,min=2,max=150"`
	CertificationID *uint   `json:"certification_id" form:"certification_id" validate:"omitempty,gt=0"`
	DurationSeconds *int    `json:"duration_seconds" form:"duration_seconds" validate:"omitempty,gte=0"`
	VideoPath       *string `json:"video_path"       form:"video_path"       validate:"omitempty,max=1024"`
}

func (r *UpdateVideoRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.VideoPath != nil {
		v := strings.TrimSpace(*r.VideoPath)
		if v == "" {
			r.VideoPath = nil
		} else {
			r.VideoPath = &v
		}
	}
}

func (r UpdateVideoRequest) ApplyToModel(m *model.VideoModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.CertificationID != nil {
		m.CertificationID = *r.CertificationID
	}
	if r.DurationSeconds != nil {
		m.DurationSeconds = *r.DurationSeconds
	}
	if r.VideoPath != nil {
		m.URL = *r.VideoPath
	}
}
