package models

import "time"

type Caretaker struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	ContactInfo string    `gorm:"column:contact_info;size:180;not null" json:"contactInfo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Caretaker) TableName() string {
	return "caretakers"
}
