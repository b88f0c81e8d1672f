package models

import "time"

type ReminderType string

const (
	ReminderWatering   ReminderType = "watering"
	ReminderFertilizer ReminderType = "fertilizer"
	ReminderSpray      ReminderType = "spray"
	ReminderHarvest    ReminderType = "harvest"
)

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderWatering, ReminderFertilizer, ReminderSpray, ReminderHarvest:
		return true
	}
	return false
}

// Delivery methods. Generation always uses Email; SMS and WhatsApp remain
// storable for reminders carried over from older clients.
const (
	MethodEmail    = "Email"
	MethodSMS      = "SMS"
	MethodWhatsApp = "WhatsApp"
)

// Reminder is a scheduled future care task for a plot. Within a generation
// run no duplicate is created for the same (plot, crop, type) with a due
// date inside the upcoming window.
type Reminder struct {
	ID      uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	PlotID  uint         `gorm:"not null;index" json:"plotId"`
	Plot    *Plot        `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
	CropID  uint         `gorm:"not null" json:"cropId"`
	Crop    *Crop        `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	Type    ReminderType `gorm:"size:20;not null" json:"type"`
	DueDate time.Time    `gorm:"column:due_date;not null;index" json:"dueDate"`
	Sent    bool         `gorm:"not null;default:false" json:"sent"`
	Method  string       `gorm:"size:20;not null;default:Email" json:"method"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Reminder) TableName() string {
	return "reminders"
}
