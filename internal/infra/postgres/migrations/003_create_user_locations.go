package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createUserLocationsTable creates the user_locations table. The unique
// constraint on user_id is the backstop for the one-row-per-user invariant
// that the distributed lock protects at the application level.
func createUserLocationsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "003_create_user_locations",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS user_locations (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL,
					latitude DOUBLE PRECISION NOT NULL,
					longitude DOUBLE PRECISION NOT NULL,
					location POINT,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					CONSTRAINT uq_user_locations_user UNIQUE (user_id)
				);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS user_locations;").Error
		},
	}
}
