package config

import (
	"log"

	"gorm.io/gorm"
	"khet.pk/farm/models"
)

// SeedCrops inserts the default crop catalogue on first boot. Existing
// rows are left alone so operators can rename or extend the list.
func SeedCrops(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Crop{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	crops := []models.Crop{
		{Name: "Wheat", NameUrdu: "گندم"},
		{Name: "Rice", NameUrdu: "چاول"},
		{Name: "Sugarcane", NameUrdu: "گنا"},
		{Name: "Cotton", NameUrdu: "کپاس"},
		{Name: "Maize", NameUrdu: "مکئی"},
		{Name: "Tomato", NameUrdu: "ٹماٹر"},
		{Name: "Potato", NameUrdu: "آلو"},
		{Name: "Onion", NameUrdu: "پیاز"},
	}

	if err := db.Create(&crops).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d default crops", len(crops))
	return nil
}
