package model

import (
	"time"

	certModel "certihub_backend/internals/features/catalog/certifications/model"
)

type VideoModel struct {
	ID              uint      `gorm:"column:video_id;primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"column:video_name;type:varchar(150);not null" json:"name"`
	URL             string    `gorm:"column:video_url;type:varchar(1024)" json:"url"`
	DurationSeconds int       `gorm:"column:video_duration_seconds;not null;default:0" json:"duration_seconds"`
	CertificationID uint      `gorm:"column:video_certification_id;not null;index" json:"certification_id"`
	CreatedAt       time.Time `gorm:"column:video_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:video_updated_at;autoUpdateTime" json:"updated_at"`

	Certification *certModel.CertificationModel `gorm:"foreignKey:CertificationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (VideoModel) TableName() string { return "videos" }

type VideoView struct {
	ID                uint      `gorm:"column:video_id" json:"id"`
	Name              string    `gorm:"column:video_name" json:"name"`
	URL               string    `gorm:"column:video_url" json:"url"`
	DurationSeconds   int       `gorm:"column:video_duration_seconds" json:"duration_seconds"`
	CertificationID   uint      `gorm:"column:video_certification_id" json:"certification_id"`
	CertificationName string    `gorm:"column:certification_name" json:"certification_name"`
	CreatedAt         time.Time `gorm:"column:video_created_at" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:video_updated_at" json:"updated_at"`
}

const ViewColumns = "videos.video_id, videos.video_name, videos.video_url, " +
	"videos.video_duration_seconds, videos.video_certification_id, " +
	"videos.video_created_at, videos.video_updated_at, certifications.certification_name"
