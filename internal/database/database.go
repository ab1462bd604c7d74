package database

import (
	"nexus-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Postgres).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all entities. Organization goes first so
// the user/invitation FKs (with ON DELETE CASCADE) have a target.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Organization{}, &domain.User{}, &domain.Invitation{})
}
