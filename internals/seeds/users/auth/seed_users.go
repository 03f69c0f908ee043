package user

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	roleModel "certihub_backend/internals/features/users/roles/model"
	"certihub_backend/internals/features/users/users/model"
	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserSeed struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // role name
}

// SeedAdminFromEnv creates the administrator account named by
// SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD when both are set.
func SeedAdminFromEnv(db *gorm.DB) error {
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn().Msg("⚠️ SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, admin seed skipped")
		return nil
	}
	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}
	return seedUser(db, UserSeed{FullName: name, Email: email, Password: password, Role: "administrator"})
}

// SeedUsersFromJSON reads a list of UserSeed from filePath.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Info().Msgf("📥 reading users file: %s", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	for _, data := range inputs {
		if err := seedUser(db, data); err != nil {
			log.Error().Err(err).Msgf("❌ failed to seed user '%s'", data.Email)
		}
	}
	return nil
}

func seedUser(db *gorm.DB, data UserSeed) error {
	email := strings.ToLower(strings.TrimSpace(data.Email))

	var existing int64
	if err := db.Model(&model.UserModel{}).Where("user_email = ?", email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		log.Info().Msgf("ℹ️ user '%s' already exists, skipped", email)
		return nil
	}

	var role roleModel.RoleModel
	if err := db.Where("role_name = ?", data.Role).First(&role).Error; err != nil {
		return fmt.Errorf("role %q: %w", data.Role, err)
	}

	hashed, err := helperAuth.HashPassword(data.Password)
	if err != nil {
		return err
	}
	u := model.UserModel{
		FullName:     data.FullName,
		Email:        email,
		PasswordHash: hashed,
		RoleID:       role.ID,
	}
	if err := db.Create(&u).Error; err != nil {
		return err
	}
	log.Info().Msgf("✅ user '%s' inserted", email)
	return nil
}
