package repository

import (
	"context"
	"testing"

	database "certihub_backend/internals/databases"
	certModel "certihub_backend/internals/features/catalog/certifications/model"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
	docModel "certihub_backend/internals/features/catalog/documents/model"
	"certihub_backend/internals/features/catalog/videos/model"
	helper "certihub_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCompany(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	c := companyModel.CompanyModel{Name: "Acme", Type: "Manufacturing", IsActive: true}
	require.NoError(t, db.Create(&c).Error)
	return c.ID
}

func TestVideoLifecycle(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	r := NewVideoRepository(db)
	ctx := context.Background()

	err = r.Create(ctx, &model.VideoModel{Name: "Intro", CertificationID: 42})
	assert.True(t, helper.IsKind(err, helper.KindReference))

	cert := certModel.CertificationModel{Name: "ISO 9001", CompanyID: seedCompany(t, db), IsActive: true}
	require.NoError(t, db.Create(&cert).Error)

	first := &model.VideoModel{Name: "Intro", CertificationID: cert.ID, DurationSeconds: 90}
	second := &model.VideoModel{Name: "Audit basics", CertificationID: cert.ID}
	require.NoError(t, r.Create(ctx, first))
	require.NoError(t, r.Create(ctx, second))

	v, err := r.GetView(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "ISO 9001", v.CertificationName)

	list, err := r.ListByCertification(ctx, cert.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	require.NoError(t, r.UpdateURL(ctx, first.ID, "https://cdn.test/videos/intro_1.mp4"))
	require.NoError(t, db.Create(&docModel.DocumentModel{Name: "Slides", URL: "https://cdn.test/documents/intro_1/slides_1.pdf", VideoID: first.ID}).Error)
	require.NoError(t, db.Create(&docModel.DocumentModel{Name: "Notes", URL: "https://cdn.test/documents/intro_1/notes_2.pdf", VideoID: first.ID}).Error)
	require.NoError(t, db.Create(&docModel.DocumentModel{Name: "Other", VideoID: second.ID}).Error)

	deleted, urls, err := r.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/videos/intro_1.mp4", deleted.URL)
	assert.ElementsMatch(t, []string{
		"https://cdn.test/documents/intro_1/slides_1.pdf",
		"https://cdn.test/documents/intro_1/notes_2.pdf",
	}, urls)

	var docs int64
	require.NoError(t, db.Model(&docModel.DocumentModel{}).Count(&docs).Error)
	assert.Equal(t, int64(1), docs)

	_, _, err = r.Delete(ctx, first.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestVideoFilters(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	r := NewVideoRepository(db)
	ctx := context.Background()

	companyID := seedCompany(t, db)
	a := certModel.CertificationModel{Name: "A", CompanyID: companyID, IsActive: true}
	b := certModel.CertificationModel{Name: "B", CompanyID: companyID, IsActive: true}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	for _, v := range []model.VideoModel{
		{Name: "Welding Intro", CertificationID: a.ID},
		{Name: "Welding Advanced", CertificationID: b.ID},
		{Name: "Safety", CertificationID: b.ID},
	} {
		v := v
		require.NoError(t, r.Create(ctx, &v))
	}

	name := "WELD"
	n, err := r.Count(ctx, VideoFilter{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err := r.List(ctx, VideoFilter{Name: &name, CertificationID: &b.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Welding Advanced", rows[0].Name)
}

func TestVideoForeignKeys(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	err = db.Create(&model.VideoModel{Name: "Stray", CertificationID: 999}).Error
	require.Error(t, err)
	assert.Equal(t, helper.KindReference, helper.ClassifyDBError(err))

	cert := certModel.CertificationModel{Name: "ISO 9001", CompanyID: seedCompany(t, db), IsActive: true}
	require.NoError(t, db.Create(&cert).Error)
	require.NoError(t, db.Create(&model.VideoModel{Name: "Intro", CertificationID: cert.ID}).Error)

	err = db.Delete(&certModel.CertificationModel{}, "certification_id = ?", cert.ID).Error
	require.Error(t, err)
	assert.True(t, helper.IsKind(helper.WrapDBDeleteError(err, "Certification"), helper.KindReferencedElsewhere))
}
