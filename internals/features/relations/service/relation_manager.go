package service

import (
	"context"
	"errors"
	"time"

	"certihub_backend/internals/constants"
	certModel "certihub_backend/internals/features/catalog/certifications/model"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
	clientModel "certihub_backend/internals/features/clients/clients/model"
	"certihub_backend/internals/features/relations/model"
	helper "certihub_backend/internals/helpers"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityRelation = "Relationship"

// RelationManager owns the client↔company and client↔certification
// association tables.
type RelationManager struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewRelationManager(db *gorm.DB) *RelationManager {
	return &RelationManager{DB: db, Now: time.Now}
}

/* ===============================
   Client ↔ Company
=================================*/

// LinkClientCompany is idempotent: an existing pair is reported as success
// with created=false.
func (m *RelationManager) LinkClientCompany(ctx context.Context, clientID, companyID uint) (created bool, err error) {
	db := m.DB.WithContext(ctx)
	if err := m.requireClient(db, clientID); err != nil {
		return false, err
	}
	if err := m.requireRow(db, &companyModel.CompanyModel{}, "company_id", companyID, "Company does not exist"); err != nil {
		return false, err
	}

	row := model.ClientCompanyModel{ClientID: clientID, CompanyID: companyID}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, helper.WrapDBError(res.Error, entityRelation)
	}
	if res.RowsAffected > 0 {
		log.Info().Msgf("[RELATIONS][LINK-COMPANY] client=%d company=%d", clientID, companyID)
	}
	return res.RowsAffected > 0, nil
}

// UnlinkClientCompany reports whether a row was removed.
func (m *RelationManager) UnlinkClientCompany(ctx context.Context, clientID, companyID uint) (bool, error) {
	res := m.DB.WithContext(ctx).
		Where("client_company_client_id = ? AND client_company_company_id = ?", clientID, companyID).
		Delete(&model.ClientCompanyModel{})
	if res.Error != nil {
		return false, helper.WrapDBError(res.Error, entityRelation)
	}
	return res.RowsAffected > 0, nil
}

func (m *RelationManager) CompaniesForClient(ctx context.Context, clientID uint) ([]companyModel.CompanyModel, error) {
	out := make([]companyModel.CompanyModel, 0)
	err := m.DB.WithContext(ctx).
		Joins("JOIN client_companies ON client_companies.client_company_company_id = companies.company_id").
		Where("client_companies.client_company_client_id = ?", clientID).
		Order("companies.company_name ASC").
		Find(&out).Error
	return out, helper.WrapDBError(err, entityRelation)
}

func (m *RelationManager) ClientsForCompany(ctx context.Context, companyID uint) ([]clientModel.ClientModel, error) {
	out := make([]clientModel.ClientModel, 0)
	err := m.DB.WithContext(ctx).
		Joins("JOIN client_companies ON client_companies.client_company_client_id = clients.client_id").
		Where("client_companies.client_company_company_id = ?", companyID).
		Order("clients.client_full_name ASC").
		Find(&out).Error
	return out, helper.WrapDBError(err, entityRelation)
}

/* ===============================
   Client ↔ Certification
=================================*/

// LinkClientCertification is idempotent. New assignments start active.
func (m *RelationManager) LinkClientCertification(ctx context.Context, clientID, certificationID uint) (created bool, err error) {
	db := m.DB.WithContext(ctx)
	if err := m.requireClient(db, clientID); err != nil {
		return false, err
	}
	if err := m.requireRow(db, &certModel.CertificationModel{}, "certification_id", certificationID, "Certification does not exist"); err != nil {
		return false, err
	}

	row := model.ClientCertificationModel{
		ClientID:        clientID,
		CertificationID: certificationID,
		IsActive:        true,
		AssignedAt:      m.Now(),
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, helper.WrapDBError(res.Error, entityRelation)
	}
	if res.RowsAffected > 0 {
		log.Info().Msgf("[RELATIONS][LINK-CERTIFICATION] client=%d certification=%d", clientID, certificationID)
	}
	return res.RowsAffected > 0, nil
}

func (m *RelationManager) UnlinkClientCertification(ctx context.Context, clientID, certificationID uint) (bool, error) {
	res := m.DB.WithContext(ctx).
		Where("client_certification_client_id = ? AND client_certification_certification_id = ?", clientID, certificationID).
		Delete(&model.ClientCertificationModel{})
	if res.Error != nil {
		return false, helper.WrapDBError(res.Error, entityRelation)
	}
	return res.RowsAffected > 0, nil
}

// ToggleClientCertificationActive flips the assignment's own flag and
// returns the updated row.
func (m *RelationManager) ToggleClientCertificationActive(ctx context.Context, clientID, certificationID uint) (*model.ClientCertificationModel, error) {
	var row model.ClientCertificationModel
	err := m.DB.WithContext(ctx).
		Where("client_certification_client_id = ? AND client_certification_certification_id = ?", clientID, certificationID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NewNotFoundError("Relationship not found")
	}
	if err != nil {
		return nil, helper.WrapDBError(err, entityRelation)
	}

	next := constants.ActiveStatus(row.IsActive).Toggle()
	if err := m.DB.WithContext(ctx).Model(&model.ClientCertificationModel{}).
		Where("client_certification_id = ?", row.ID).
		Update("client_certification_is_active", bool(next)).Error; err != nil {
		return nil, helper.WrapDBError(err, entityRelation)
	}
	row.IsActive = bool(next)
	return &row, nil
}

func (m *RelationManager) clientCertifications(ctx context.Context, clientID uint) *gorm.DB {
	return m.DB.WithContext(ctx).
		Table("client_certifications").
		Select(certModel.ViewColumns+", client_certifications.client_certification_is_active, client_certifications.client_certification_assigned_at").
		Joins("JOIN certifications ON certifications.certification_id = client_certifications.client_certification_certification_id").
		Joins("LEFT JOIN companies ON companies.company_id = certifications.certification_company_id").
		Where("client_certifications.client_certification_client_id = ?", clientID)
}

// CertificationsVisibleToClient returns only certifications where both the
// certification and the assignment are active.
func (m *RelationManager) CertificationsVisibleToClient(ctx context.Context, clientID uint) ([]model.ClientCertificationView, error) {
	out := make([]model.ClientCertificationView, 0)
	err := m.clientCertifications(ctx, clientID).
		Where("certifications.certification_is_active = ? AND client_certifications.client_certification_is_active = ?", true, true).
		Order("certifications.certification_name ASC").
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityRelation)
}

// CertificationHistoryForClient returns every assignment regardless of
// active flags, newest first.
func (m *RelationManager) CertificationHistoryForClient(ctx context.Context, clientID uint) ([]model.ClientCertificationView, error) {
	out := make([]model.ClientCertificationView, 0)
	err := m.clientCertifications(ctx, clientID).
		Order("client_certifications.client_certification_assigned_at DESC").
		Order("client_certifications.client_certification_id DESC").
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityRelation)
}

func (m *RelationManager) ClientsForCertification(ctx context.Context, certificationID uint) ([]model.AssignedClientView, error) {
	out := make([]model.AssignedClientView, 0)
	err := m.DB.WithContext(ctx).
		Table("client_certifications").
		Select("clients.client_id, clients.client_full_name, clients.client_email, clients.client_status, " +
			"client_certifications.client_certification_is_active, client_certifications.client_certification_assigned_at").
		Joins("JOIN clients ON clients.client_id = client_certifications.client_certification_client_id").
		Where("client_certifications.client_certification_certification_id = ?", certificationID).
		Order("client_certifications.client_certification_assigned_at DESC").
		Scan(&out).Error
	return out, helper.WrapDBError(err, entityRelation)
}

// ClientCanViewCertification returns nil when the client may see the
// certification's media. Otherwise: NotFound when the certification does
// not exist, Authorization when it is unassigned or either flag is off.
func (m *RelationManager) ClientCanViewCertification(ctx context.Context, clientID, certificationID uint) error {
	db := m.DB.WithContext(ctx)

	var cert certModel.CertificationModel
	if err := db.First(&cert, "certification_id = ?", certificationID).Error; err != nil {
		return helper.WrapDBError(err, "Certification")
	}

	var row model.ClientCertificationModel
	err := db.Where("client_certification_client_id = ? AND client_certification_certification_id = ?", clientID, certificationID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NewAuthorizationError(constants.ErrCertificationNotAssigned)
	}
	if err != nil {
		return helper.WrapDBError(err, entityRelation)
	}

	if !cert.IsActive {
		return helper.NewAuthorizationError(constants.ErrCertificationNotAvailable).WithTitle("Certification inactive")
	}
	if !row.IsActive {
		return helper.NewAuthorizationError(constants.ErrCertificationAccessInactive).WithTitle("Access inactive")
	}
	return nil
}

/* ===============================
   Existence checks
=================================*/

func (m *RelationManager) requireClient(db *gorm.DB, clientID uint) error {
	return m.requireRow(db, &clientModel.ClientModel{}, "client_id", clientID, "Client does not exist")
}

func (m *RelationManager) requireRow(db *gorm.DB, mdl any, pk string, id uint, msg string) error {
	var n int64
	if err := db.Model(mdl).Where(pk+" = ?", id).Count(&n).Error; err != nil {
		return helper.WrapDBError(err, entityRelation)
	}
	if n == 0 {
		return helper.NewReferenceError(msg)
	}
	return nil
}
