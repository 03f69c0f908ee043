package model

import (
	"time"

	videoModel "certihub_backend/internals/features/catalog/videos/model"
)

type DocumentModel struct {
	ID        uint      `gorm:"column:document_id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:document_name;type:varchar(150);not null" json:"name"`
	URL       string    `gorm:"column:document_url;type:varchar(1024);not null" json:"url"`
	VideoID   uint      `gorm:"column:document_video_id;not null;index" json:"video_id"`
	CreatedAt time.Time `gorm:"column:document_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:document_updated_at;autoUpdateTime" json:"updated_at"`

	Video *videoModel.VideoModel `gorm:"foreignKey:VideoID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (DocumentModel) TableName() string { return "documents" }

type DocumentView struct {
	ID        uint      `gorm:"column:document_id" json:"id"`
	Name      string    `gorm:"column:document_name" json:"name"`
	URL       string    `gorm:"column:document_url" json:"url"`
	VideoID   uint      `gorm:"column:document_video_id" json:"video_id"`
	VideoName string    `gorm:"column:video_name" json:"video_name"`
	CreatedAt time.Time `gorm:"column:document_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:document_updated_at" json:"updated_at"`
}

const ViewColumns = "documents.document_id, documents.document_name, documents.document_url, " +
	"documents.document_video_id, documents.document_created_at, documents.document_updated_at, " +
	"videos.video_name"
