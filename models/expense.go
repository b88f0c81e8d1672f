package models

import "time"

type Expense struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlotID      uint     `gorm:"not null;index" json:"plotId"`
	Plot        *Plot    `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
	CropID      uint     `gorm:"not null" json:"cropId"`
	Crop        *Crop    `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	Type        string   `gorm:"size:60;not null" json:"type"`
	Amount      float64  `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        JSONTime `gorm:"not null;index" json:"date"`
	Description string   `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Expense) TableName() string {
	return "expenses"
}
