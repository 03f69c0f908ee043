package repository

import (
	"context"
	"testing"

	database "certihub_backend/internals/databases"
	certModel "certihub_backend/internals/features/catalog/certifications/model"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
	"certihub_backend/internals/features/catalog/documents/model"
	videoModel "certihub_backend/internals/features/catalog/videos/model"
	helper "certihub_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRepository(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	r := NewDocumentRepository(db)
	ctx := context.Background()

	err = r.Create(ctx, &model.DocumentModel{Name: "Slides", VideoID: 7})
	assert.True(t, helper.IsKind(err, helper.KindReference))

	company := companyModel.CompanyModel{Name: "Acme", Type: "Manufacturing", IsActive: true}
	require.NoError(t, db.Create(&company).Error)
	cert := certModel.CertificationModel{Name: "ISO 9001", CompanyID: company.ID, IsActive: true}
	require.NoError(t, db.Create(&cert).Error)

	intro := videoModel.VideoModel{Name: "Intro", CertificationID: cert.ID}
	audit := videoModel.VideoModel{Name: "Audit", CertificationID: cert.ID}
	require.NoError(t, db.Create(&intro).Error)
	require.NoError(t, db.Create(&audit).Error)

	slides := &model.DocumentModel{Name: "Slides", VideoID: intro.ID}
	require.NoError(t, r.Create(ctx, slides))
	require.NoError(t, r.Create(ctx, &model.DocumentModel{Name: "Checklist", VideoID: audit.ID}))
	require.NoError(t, r.Create(ctx, &model.DocumentModel{Name: "Notes", VideoID: intro.ID}))

	v, err := r.GetView(ctx, slides.ID)
	require.NoError(t, err)
	assert.Equal(t, "Intro", v.VideoName)

	grouped, err := r.ListByVideos(ctx, []uint{intro.ID, audit.ID})
	require.NoError(t, err)
	assert.Len(t, grouped[intro.ID], 2)
	assert.Len(t, grouped[audit.ID], 1)

	empty, err := r.ListByVideos(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	n, err := r.Count(ctx, DocumentFilter{VideoID: &intro.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	slides.VideoID = 999
	assert.True(t, helper.IsKind(r.Update(ctx, slides), helper.KindReference))

	deleted, err := r.Delete(ctx, slides.ID)
	require.NoError(t, err)
	assert.Equal(t, "Slides", deleted.Name)

	_, err = r.Delete(ctx, slides.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}
