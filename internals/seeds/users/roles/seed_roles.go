package roles

import (
	"certihub_backend/internals/constants"
	"certihub_backend/internals/features/users/roles/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SeedRoles makes sure one role per kind exists. Existing names are skipped.
func SeedRoles(db *gorm.DB) error {
	for _, kind := range constants.AllRoleKinds {
		var n int64
		if err := db.Model(&model.RoleModel{}).Where("role_name = ?", kind).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Info().Msgf("ℹ️ role '%s' already exists, skipped", kind)
			continue
		}
		if err := db.Create(&model.RoleModel{Name: kind, Kind: kind}).Error; err != nil {
			return err
		}
		log.Info().Msgf("✅ role '%s' inserted", kind)
	}
	return nil
}
