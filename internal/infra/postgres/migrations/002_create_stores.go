package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createStoresTable creates the stores table. The location column mirrors the
// scalar coordinates as a native point so the position stays queryable as
// geometry.
func createStoresTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_stores",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS stores (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(255) NOT NULL,
					type VARCHAR(50) NOT NULL,
					address VARCHAR(500),
					latitude DOUBLE PRECISION NOT NULL,
					longitude DOUBLE PRECISION NOT NULL,
					location POINT,
					rating DECIMAL(3,2) DEFAULT 0,
					is_active BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_stores_name ON stores(name);",
				"CREATE INDEX IF NOT EXISTS idx_stores_type ON stores(type);",
				"CREATE INDEX IF NOT EXISTS idx_stores_is_active ON stores(is_active);",
				"CREATE INDEX IF NOT EXISTS idx_stores_lat_lng ON stores(latitude, longitude);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS stores;").Error
		},
	}
}
