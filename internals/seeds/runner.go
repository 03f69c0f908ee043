package seeds

import (
	"os"

	roles "certihub_backend/internals/seeds/users/roles"
	users "certihub_backend/internals/seeds/users/auth"

	"gorm.io/gorm"
)

// RunAllSeeds is idempotent; rows that already exist are skipped.
func RunAllSeeds(db *gorm.DB) error {
	//* Roles
	if err := roles.SeedRoles(db); err != nil {
		return err
	}

	//* Users
	if err := users.SeedAdminFromEnv(db); err != nil {
		return err
	}
	if path := os.Getenv("SEED_USERS_FILE"); path != "" {
		if err := users.SeedUsersFromJSON(db, path); err != nil {
			return err
		}
	}
	return nil
}
