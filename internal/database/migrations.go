package database

import (
	"github.com/tanu42012/zap-shift-server/internal/models"
	"gorm.io/gorm"
)

// RunMigrations creates the schema and enforces the enum and counter
// constraints Postgres can check for us. Only called against Postgres;
// tests migrate with AutoMigrate directly.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Parcel{},
		&models.Rider{},
		&models.Payment{},
		&models.TrackingEvent{},
	)
	if err != nil {
		return err
	}

	constraints := []string{
		`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`,
		`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('user', 'admin', 'rider'))`,
		`ALTER TABLE riders DROP CONSTRAINT IF EXISTS riders_status_check`,
		`ALTER TABLE riders ADD CONSTRAINT riders_status_check CHECK (status IN ('pending', 'active', 'reject'))`,
		`ALTER TABLE riders DROP CONSTRAINT IF EXISTS riders_active_parcels_check`,
		`ALTER TABLE riders ADD CONSTRAINT riders_active_parcels_check CHECK (active_parcels >= 0)`,
		`ALTER TABLE parcels DROP CONSTRAINT IF EXISTS parcels_payment_status_check`,
		`ALTER TABLE parcels ADD CONSTRAINT parcels_payment_status_check CHECK (payment_status IN ('unpaid', 'paid'))`,
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
