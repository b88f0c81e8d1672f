package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"khet.pk/farm/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Caretaker{}, &models.Crop{},
					&models.Plot{}, &models.LifecycleEvent{}, &models.Reminder{})
			},
		},
		{
			ID: "20250315_create_input_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Fertilizer{}, &models.Pesticide{},
					&models.Irrigation{}, &models.Expense{})
			},
		},
		{
			ID: "20250402_add_plot_boundary_and_soft_delete",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("ALTER TABLE plots ADD COLUMN IF NOT EXISTS boundary jsonb").Error; err != nil {
					return err
				}
				if err := tx.Exec("ALTER TABLE plots ADD COLUMN IF NOT EXISTS is_active boolean DEFAULT true").Error; err != nil {
					return err
				}
				// Plots created before the flag existed stay visible
				return tx.Exec("UPDATE plots SET is_active = true WHERE is_active IS NULL").Error
			},
		},
		{
			ID: "20250420_add_reminder_dedup_index",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_reminders_dedup ON reminders (plot_id, crop_id, type, due_date)").Error
			},
		},
	})

	return m.Migrate()
}
