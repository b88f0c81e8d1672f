package models

import "time"

type Fertilizer struct {
	ID             uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlotID         uint     `gorm:"not null;index" json:"plotId"`
	Plot           *Plot    `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
	CropID         uint     `gorm:"not null" json:"cropId"`
	Crop           *Crop    `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	Date           JSONTime `gorm:"not null" json:"date"`
	FertilizerType string   `gorm:"column:fertilizer_type;size:120;not null" json:"fertilizerType"`
	Quantity       float64  `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Cost           float64  `gorm:"type:decimal(10,2)" json:"cost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Fertilizer) TableName() string {
	return "fertilizers"
}
