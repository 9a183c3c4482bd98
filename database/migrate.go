package database

import (
	"fmt"

	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"gorm.io/gorm"
)

// activeSlotIndex allows one holding reservation per (table, timestamp).
// MySQL has no partial indexes; there the row lock taken while reserving is the only guard.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_active_slot
	ON reservations (table_id, reservation_date)
	WHERE status = 'ACTIVE' AND deleted_at IS NULL`

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
		&models.MenuItem{},
		&models.Restaurant{},
		&models.Facility{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := ExecuteIndexes(db); err != nil {
		return err
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// ExecuteIndexes creates the indexes gorm tags cannot express.
func ExecuteIndexes(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite", "postgres":
		if err := db.Exec(activeSlotIndex).Error; err != nil {
			return fmt.Errorf("create active slot index: %w", err)
		}
		utils.InfoLogger.Printf("Index idx_reservation_active_slot ready (%s)", db.Dialector.Name())
	default:
		utils.InfoLogger.Printf("Skipping partial index on %s", db.Dialector.Name())
	}
	return nil
}
