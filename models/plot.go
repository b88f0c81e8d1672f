package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlotStatus is the coarse cultivation state of a plot. Once a plot has
// lifecycle events the status is always derived from the most recent one;
// before that it keeps whatever was set at creation time.
type PlotStatus string

const (
	StatusPlanting  PlotStatus = "planting"
	StatusGrowing   PlotStatus = "growing"
	StatusHarvested PlotStatus = "harvested"
)

// UnderCultivation reports whether plots in this status receive care
// reminders. Harvested plots do not.
func (s PlotStatus) UnderCultivation() bool {
	return s == StatusPlanting || s == StatusGrowing
}

func (s PlotStatus) Valid() bool {
	switch s {
	case StatusPlanting, StatusGrowing, StatusHarvested:
		return true
	}
	return false
}

type Plot struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"size:120;not null" json:"name"`
	Acreage       float64    `gorm:"type:decimal(10,2);not null" json:"acreage"`
	Status        PlotStatus `gorm:"size:20;not null" json:"status"`
	CaretakerID   *uint      `json:"caretakerId,omitempty"`
	Caretaker     *Caretaker `gorm:"foreignKey:CaretakerID" json:"caretaker,omitempty"`
	CurrentCropID *uint      `gorm:"column:current_crop_id" json:"currentCropId,omitempty"`
	CurrentCrop   *Crop      `gorm:"foreignKey:CurrentCropID" json:"currentCrop,omitempty"`
	OwnerID       *uuid.UUID `gorm:"type:uuid" json:"ownerId,omitempty"`

	// Boundary is an optional polygon (array of {lat,lng}) enclosing the
	// plot, used for point-in-plot lookups.
	Boundary datatypes.JSON `gorm:"type:jsonb" json:"boundary,omitempty"`

	// Soft delete. Read paths filter on this by default; admins can list
	// and restore inactive plots.
	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Plot) TableName() string {
	return "plots"
}
