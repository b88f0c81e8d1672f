package models

import "testing"

func TestStatusForEventType(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		expected  PlotStatus
	}{
		// Planting group
		{"planting upper", "PLANTING", StatusPlanting},
		{"planting mixed case", "Planting", StatusPlanting},
		{"seedling", "SEEDLING", StatusPlanting},
		{"seedling lower", "seedling", StatusPlanting},

		// Harvest group
		{"harvesting", "HARVESTING", StatusHarvested},
		{"harvesting mixed case", "Harvesting", StatusHarvested},
		{"post harvest", "POST_HARVEST", StatusHarvested},
		{"post harvest lower", "post_harvest", StatusHarvested},

		// Growing group
		{"vegetative", "VEGETATIVE", StatusGrowing},
		{"flowering", "FLOWERING", StatusGrowing},
		{"fruiting", "FRUITING", StatusGrowing},
		{"maturation", "MATURATION", StatusGrowing},
		{"disease", "DISEASE", StatusGrowing},
		{"pest control", "PEST_CONTROL", StatusGrowing},
		{"fertilization", "FERTILIZATION", StatusGrowing},
		{"irrigation", "IRRIGATION", StatusGrowing},
		{"weeding", "WEEDING", StatusGrowing},
		{"pruning", "PRUNING", StatusGrowing},

		// Fallback
		{"other falls back to growing", "OTHER", StatusGrowing},
		{"empty falls back to growing", "", StatusGrowing},
		{"unknown falls back to growing", "SOIL_TEST", StatusGrowing},

		// Substring behavior: precedence is first-match-wins
		{"substring planting wins", "SPRING_PLANTING", StatusPlanting},
		{"substring harvesting", "WHEAT_HARVESTING", StatusHarvested},
		{"post_harvest matches harvest rule not planting", "POST_HARVEST_CLEANUP", StatusHarvested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForEventType(tt.eventType); got != tt.expected {
				t.Errorf("StatusForEventType(%q) = %q, expected %q", tt.eventType, got, tt.expected)
			}
		})
	}
}

func TestValidEventType(t *testing.T) {
	tests := []struct {
		eventType string
		expected  bool
	}{
		{"PLANTING", true},
		{"planting", true},
		{" Harvesting ", true},
		{"post_harvest", true},
		{"OTHER", true},
		{"SOIL_TEST", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidEventType(tt.eventType); got != tt.expected {
			t.Errorf("ValidEventType(%q) = %v, expected %v", tt.eventType, got, tt.expected)
		}
	}
}

func TestPlotStatusUnderCultivation(t *testing.T) {
	if !StatusPlanting.UnderCultivation() {
		t.Error("planting plots should be under cultivation")
	}
	if !StatusGrowing.UnderCultivation() {
		t.Error("growing plots should be under cultivation")
	}
	if StatusHarvested.UnderCultivation() {
		t.Error("harvested plots should not be under cultivation")
	}
}
