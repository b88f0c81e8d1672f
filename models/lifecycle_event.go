package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Lifecycle event taxonomy. Incoming event_type values are normalized to
// upper case and must be one of these kinds; unknown kinds are rejected at
// the API boundary rather than silently accepted.
const (
	EventPlanting      = "PLANTING"
	EventSeedling      = "SEEDLING"
	EventVegetative    = "VEGETATIVE"
	EventFlowering     = "FLOWERING"
	EventFruiting      = "FRUITING"
	EventMaturation    = "MATURATION"
	EventHarvesting    = "HARVESTING"
	EventPostHarvest   = "POST_HARVEST"
	EventDisease       = "DISEASE"
	EventPestControl   = "PEST_CONTROL"
	EventFertilization = "FERTILIZATION"
	EventIrrigation    = "IRRIGATION"
	EventWeeding       = "WEEDING"
	EventPruning       = "PRUNING"
	EventOther         = "OTHER"
)

// EventTypeLabel carries the display names shown to farmers.
type EventTypeLabel struct {
	Code string `json:"code"`
	En   string `json:"en"`
	Ur   string `json:"ur"`
}

// EventTypeLabels lists the full taxonomy in display order.
var EventTypeLabels = []EventTypeLabel{
	{EventPlanting, "Planting", "بوائی"},
	{EventSeedling, "Seedling", "پودا"},
	{EventVegetative, "Vegetative Growth", "نشوونما"},
	{EventFlowering, "Flowering", "پھول"},
	{EventFruiting, "Fruiting", "پھل"},
	{EventMaturation, "Maturation", "پختگی"},
	{EventHarvesting, "Harvesting", "کٹائی"},
	{EventPostHarvest, "Post Harvest", "کٹائی کے بعد"},
	{EventDisease, "Disease Treatment", "بیماری کا علاج"},
	{EventPestControl, "Pest Control", "حشرات کا کنٹرول"},
	{EventFertilization, "Fertilization", "کھاد ڈالنا"},
	{EventIrrigation, "Irrigation", "آبپاشی"},
	{EventWeeding, "Weeding", "گھاس نکالنا"},
	{EventPruning, "Pruning", "کانٹ چھانٹ"},
	{EventOther, "Other", "دوسرا"},
}

// ValidEventType reports whether eventType (any casing) is in the taxonomy.
func ValidEventType(eventType string) bool {
	upper := strings.ToUpper(strings.TrimSpace(eventType))
	for _, l := range EventTypeLabels {
		if l.Code == upper {
			return true
		}
	}
	return false
}

// StatusForEventType maps a lifecycle event type to the plot status it
// implies. Matching is case-insensitive on substrings, first match wins:
//
//  1. PLANTING / SEEDLING            -> planting
//  2. HARVESTING / POST_HARVEST      -> harvested
//  3. any recorded care activity     -> growing
//  4. anything else, including OTHER -> growing (intentional fallback)
//
// Note POST_HARVEST contains "HARVEST" but is matched in rule 2 together
// with HARVESTING, so the precedence order is load-bearing.
func StatusForEventType(eventType string) PlotStatus {
	upper := strings.ToUpper(eventType)

	switch {
	case strings.Contains(upper, EventPlanting) || strings.Contains(upper, EventSeedling):
		return StatusPlanting
	case strings.Contains(upper, EventHarvesting) || strings.Contains(upper, EventPostHarvest):
		return StatusHarvested
	case strings.Contains(upper, EventVegetative) || strings.Contains(upper, EventFlowering) ||
		strings.Contains(upper, EventFruiting) || strings.Contains(upper, EventMaturation) ||
		strings.Contains(upper, EventDisease) || strings.Contains(upper, EventPestControl) ||
		strings.Contains(upper, EventFertilization) || strings.Contains(upper, EventIrrigation) ||
		strings.Contains(upper, EventWeeding) || strings.Contains(upper, EventPruning):
		return StatusGrowing
	default:
		return StatusGrowing
	}
}

// LifecycleEvent is one timestamped agronomic occurrence on a plot.
// Yield fields are only meaningful for harvest-type events.
type LifecycleEvent struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlotID      uint     `gorm:"not null;index" json:"plotId"`
	Plot        *Plot    `gorm:"foreignKey:PlotID" json:"plot,omitempty"`
	CropID      *uint    `gorm:"index" json:"cropId,omitempty"`
	Crop        *Crop    `gorm:"foreignKey:CropID" json:"crop,omitempty"`
	EventType   string   `gorm:"column:event_type;size:40;not null" json:"eventType"`
	Title       string   `gorm:"size:180;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	Date        JSONTime `gorm:"not null;index" json:"date"`
	Notes       string   `gorm:"type:text" json:"notes,omitempty"`

	YieldAmount *float64 `gorm:"type:decimal(10,2)" json:"yieldAmount,omitempty"`
	YieldUnit   string   `gorm:"size:20" json:"yieldUnit,omitempty"`

	Photos datatypes.JSON `gorm:"type:jsonb" json:"photos,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LifecycleEvent) TableName() string {
	return "lifecycle_events"
}
