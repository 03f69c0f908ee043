package service

import (
	"context"
	"testing"
	"time"

	"certihub_backend/internals/constants"
	database "certihub_backend/internals/databases"
	certModel "certihub_backend/internals/features/catalog/certifications/model"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
	clientModel "certihub_backend/internals/features/clients/clients/model"
	helper "certihub_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	mgr     *RelationManager
	client  clientModel.ClientModel
	company companyModel.CompanyModel
	cert    certModel.CertificationModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	f := &fixture{db: db, mgr: NewRelationManager(db)}
	f.client = clientModel.ClientModel{FullName: "Rina", Email: "rina@example.com", PasswordHash: "x", Status: constants.ClientActive}
	require.NoError(t, db.Create(&f.client).Error)
	f.company = companyModel.CompanyModel{Name: "Acme", Type: "Manufacturing", IsActive: true}
	require.NoError(t, db.Create(&f.company).Error)
	f.cert = certModel.CertificationModel{Name: "ISO 9001", CompanyID: f.company.ID, IsActive: true}
	require.NoError(t, db.Create(&f.cert).Error)
	return f
}

func TestLinkClientCompanyIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.mgr.LinkClientCompany(ctx, f.client.ID, f.company.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.mgr.LinkClientCompany(ctx, f.client.ID, f.company.ID)
	require.NoError(t, err)
	assert.False(t, created)

	companies, err := f.mgr.CompaniesForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme", companies[0].Name)

	clients, err := f.mgr.ClientsForCompany(ctx, f.company.ID)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	removed, err := f.mgr.UnlinkClientCompany(ctx, f.client.ID, f.company.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.mgr.UnlinkClientCompany(ctx, f.client.ID, f.company.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLinkRequiresBothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.mgr.LinkClientCompany(ctx, 999, f.company.ID)
	assert.True(t, helper.IsKind(err, helper.KindReference))

	_, err = f.mgr.LinkClientCompany(ctx, f.client.ID, 999)
	assert.True(t, helper.IsKind(err, helper.KindReference))

	_, err = f.mgr.LinkClientCertification(ctx, f.client.ID, 999)
	assert.True(t, helper.IsKind(err, helper.KindReference))
}

func TestCertificationVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.mgr.ClientCanViewCertification(ctx, f.client.ID, f.cert.ID)
	assert.True(t, helper.IsKind(err, helper.KindAuthorization), "unassigned")

	err = f.mgr.ClientCanViewCertification(ctx, f.client.ID, 999)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	created, err := f.mgr.LinkClientCertification(ctx, f.client.ID, f.cert.ID)
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, f.mgr.ClientCanViewCertification(ctx, f.client.ID, f.cert.ID))

	visible, err := f.mgr.CertificationsVisibleToClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Acme", visible[0].CompanyName)

	// assignment off
	row, err := f.mgr.ToggleClientCertificationActive(ctx, f.client.ID, f.cert.ID)
	require.NoError(t, err)
	assert.False(t, row.IsActive)

	err = f.mgr.ClientCanViewCertification(ctx, f.client.ID, f.cert.ID)
	require.True(t, helper.IsKind(err, helper.KindAuthorization))
	assert.Equal(t, "Access inactive", err.(*helper.AppError).ResponseTitle())

	visible, err = f.mgr.CertificationsVisibleToClient(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)

	history, err := f.mgr.CertificationHistoryForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].AssignmentIsActive)

	// assignment back on, certification off
	_, err = f.mgr.ToggleClientCertificationActive(ctx, f.client.ID, f.cert.ID)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&f.cert).Update("certification_is_active", false).Error)

	err = f.mgr.ClientCanViewCertification(ctx, f.client.ID, f.cert.ID)
	require.True(t, helper.IsKind(err, helper.KindAuthorization))
	assert.Equal(t, "Certification inactive", err.(*helper.AppError).ResponseTitle())
}

func TestHistoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second := certModel.CertificationModel{Name: "ISO 14001", CompanyID: f.company.ID, IsActive: true}
	require.NoError(t, f.db.Create(&second).Error)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.mgr.Now = func() time.Time { return base }
	_, err := f.mgr.LinkClientCertification(ctx, f.client.ID, f.cert.ID)
	require.NoError(t, err)
	f.mgr.Now = func() time.Time { return base.Add(24 * time.Hour) }
	_, err = f.mgr.LinkClientCertification(ctx, f.client.ID, second.ID)
	require.NoError(t, err)

	history, err := f.mgr.CertificationHistoryForClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)

	assigned, err := f.mgr.ClientsForCertification(ctx, f.cert.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "rina@example.com", assigned[0].Email)
}

func TestToggleMissingAssignment(t *testing.T) {
	f := newFixture(t)
	_, err := f.mgr.ToggleClientCertificationActive(context.Background(), f.client.ID, f.cert.ID)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}
