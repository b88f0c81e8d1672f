package models

import "time"

type Pesticide struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlotID        uint     `gorm:"not null;index" json:"plotId"`
	Plot          *Plot    `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
	CropID        uint     `gorm:"not null" json:"cropId"`
	Crop          *Crop    `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	Date          JSONTime `gorm:"not null" json:"date"`
	PesticideType string   `gorm:"column:pesticide_type;size:120;not null" json:"pesticideType"`
	Quantity      float64  `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Cost          float64  `gorm:"type:decimal(10,2)" json:"cost"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Pesticide) TableName() string {
	return "pesticides"
}
