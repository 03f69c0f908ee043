package database

import (
	certModel "certihub_backend/internals/features/catalog/certifications/model"
	companyModel "certihub_backend/internals/features/catalog/companies/model"
	docModel "certihub_backend/internals/features/catalog/documents/model"
	videoModel "certihub_backend/internals/features/catalog/videos/model"
	clientModel "certihub_backend/internals/features/clients/clients/model"
	relModel "certihub_backend/internals/features/relations/model"
	roleModel "certihub_backend/internals/features/users/roles/model"
	userModel "certihub_backend/internals/features/users/users/model"
	helperAuth "certihub_backend/internals/helpers/auth"
	"certihub_backend/internals/helpers/blob"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Models lists every table, parents before children.
func Models() []any {
	return []any{
		&roleModel.RoleModel{},
		&userModel.UserModel{},
		&clientModel.ClientModel{},
		&companyModel.CompanyModel{},
		&certModel.CertificationModel{},
		&videoModel.VideoModel{},
		&docModel.DocumentModel{},
		&relModel.ClientCompanyModel{},
		&relModel.ClientCertificationModel{},
		&helperAuth.TokenBlacklistModel{},
		&blob.OrphanModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		log.Error().Err(err).Msg("❌ auto-migrate failed")
		return err
	}
	log.Info().Msgf("✅ auto-migrated %d tables", len(Models()))
	return nil
}

// OpenMemory opens a migrated, private in-memory SQLite database. name
// keeps separate handles from sharing tables.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := Open(DriverSQLite, "file:"+name+"?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// a shared-cache memory db locks whole tables; one connection avoids that
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
