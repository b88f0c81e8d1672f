package models

import "time"

type Crop struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:120;not null" json:"name"`
	NameUrdu string `gorm:"column:name_urdu;size:120" json:"nameUrdu"`
	Variety  string `gorm:"size:120" json:"variety"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Crop) TableName() string {
	return "crops"
}
