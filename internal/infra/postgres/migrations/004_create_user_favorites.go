package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createUserFavoritesTable creates the user_favorites table.
func createUserFavoritesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "004_create_user_favorites",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS user_favorites (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id UUID NOT NULL,
					store_id UUID NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					CONSTRAINT uq_user_favorites_user_store UNIQUE (user_id, store_id)
				);
			`).Error
			if err != nil {
				return err
			}

			return tx.Exec(
				"CREATE INDEX IF NOT EXISTS idx_user_favorites_user ON user_favorites(user_id);",
			).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS user_favorites;").Error
		},
	}
}
