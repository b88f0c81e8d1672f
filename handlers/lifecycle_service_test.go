package handlers

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"khet.pk/farm/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Caretaker{},
		&models.Crop{},
		&models.Plot{},
		&models.LifecycleEvent{},
		&models.Reminder{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func seedCrop(t *testing.T, db *gorm.DB, name string) models.Crop {
	t.Helper()
	crop := models.Crop{Name: name}
	if err := db.Create(&crop).Error; err != nil {
		t.Fatalf("failed to seed crop: %v", err)
	}
	return crop
}

func seedPlot(t *testing.T, db *gorm.DB, status models.PlotStatus, cropID *uint) models.Plot {
	t.Helper()
	plot := models.Plot{Name: "North Field", Acreage: 2.5, Status: status, CurrentCropID: cropID}
	if err := db.Create(&plot).Error; err != nil {
		t.Fatalf("failed to seed plot: %v", err)
	}
	return plot
}

func plotStatus(t *testing.T, db *gorm.DB, id uint) models.PlotStatus {
	t.Helper()
	var plot models.Plot
	if err := db.First(&plot, id).Error; err != nil {
		t.Fatalf("failed to reload plot %d: %v", id, err)
	}
	return plot.Status
}

func eventDate(t *testing.T, day int) models.JSONTime {
	t.Helper()
	return models.JSONTime(time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC))
}

func TestRecordLifecycleEventDerivesStatus(t *testing.T) {
	tests := []struct {
		eventType string
		expected  models.PlotStatus
	}{
		{models.EventPlanting, models.StatusPlanting},
		{models.EventSeedling, models.StatusPlanting},
		{models.EventIrrigation, models.StatusGrowing},
		{models.EventFertilization, models.StatusGrowing},
		{models.EventOther, models.StatusGrowing},
		{models.EventHarvesting, models.StatusHarvested},
		{models.EventPostHarvest, models.StatusHarvested},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			db := newTestDB(t)
			plot := seedPlot(t, db, models.StatusGrowing, nil)

			event, err := RecordLifecycleEvent(db, LifecycleEventInput{
				PlotID:    plot.ID,
				EventType: tt.eventType,
				Title:     "observation",
				Date:      eventDate(t, 10),
			})
			if err != nil {
				t.Fatalf("RecordLifecycleEvent failed: %v", err)
			}
			if event.EventType != tt.eventType {
				t.Errorf("stored event type = %q, expected %q", event.EventType, tt.eventType)
			}
			if got := plotStatus(t, db, plot.ID); got != tt.expected {
				t.Errorf("plot status after %s = %q, expected %q", tt.eventType, got, tt.expected)
			}
		})
	}
}

func TestRecordLifecycleEventNormalizesType(t *testing.T) {
	db := newTestDB(t)
	plot := seedPlot(t, db, models.StatusGrowing, nil)

	event, err := RecordLifecycleEvent(db, LifecycleEventInput{
		PlotID:    plot.ID,
		EventType: " planting ",
		Title:     "sowing wheat",
		Date:      eventDate(t, 1),
	})
	if err != nil {
		t.Fatalf("RecordLifecycleEvent failed: %v", err)
	}
	if event.EventType != models.EventPlanting {
		t.Errorf("event type = %q, expected normalized %q", event.EventType, models.EventPlanting)
	}
	if got := plotStatus(t, db, plot.ID); got != models.StatusPlanting {
		t.Errorf("plot status = %q, expected %q", got, models.StatusPlanting)
	}
}

func TestRecordLifecycleEventSeasonProgression(t *testing.T) {
	db := newTestDB(t)
	plot := seedPlot(t, db, models.StatusPlanting, nil)

	steps := []struct {
		day       int
		eventType string
		expected  models.PlotStatus
	}{
		{1, models.EventPlanting, models.StatusPlanting},
		{5, models.EventIrrigation, models.StatusGrowing},
		{12, models.EventPestControl, models.StatusGrowing},
		{20, models.EventHarvesting, models.StatusHarvested},
	}

	for _, step := range steps {
		_, err := RecordLifecycleEvent(db, LifecycleEventInput{
			PlotID:    plot.ID,
			EventType: step.eventType,
			Title:     step.eventType,
			Date:      eventDate(t, step.day),
		})
		if err != nil {
			t.Fatalf("RecordLifecycleEvent(%s) failed: %v", step.eventType, err)
		}
		if got := plotStatus(t, db, plot.ID); got != step.expected {
			t.Errorf("status after %s = %q, expected %q", step.eventType, got, step.expected)
		}
	}
}

func TestRecordLifecycleEventUnknownPlot(t *testing.T) {
	db := newTestDB(t)

	_, err := RecordLifecycleEvent(db, LifecycleEventInput{
		PlotID:    42,
		EventType: models.EventPlanting,
		Title:     "sowing",
		Date:      eventDate(t, 1),
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var count int64
	db.Model(&models.LifecycleEvent{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no event rows after failed record, found %d", count)
	}
}

func TestRecordLifecycleEventInactivePlot(t *testing.T) {
	db := newTestDB(t)
	plot := seedPlot(t, db, models.StatusGrowing, nil)
	if err := db.Model(&models.Plot{}).Where("id = ?", plot.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate plot: %v", err)
	}

	_, err := RecordLifecycleEvent(db, LifecycleEventInput{
		PlotID:    plot.ID,
		EventType: models.EventIrrigation,
		Title:     "watering",
		Date:      eventDate(t, 3),
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive plot, got %v", err)
	}
}

func TestRecordLifecycleEventValidation(t *testing.T) {
	db := newTestDB(t)
	plot := seedPlot(t, db, models.StatusGrowing, nil)

	tests := []struct {
		name string
		in   LifecycleEventInput
	}{
		{"missing plot", LifecycleEventInput{EventType: models.EventPlanting, Title: "x", Date: eventDate(t, 1)}},
		{"missing title", LifecycleEventInput{PlotID: plot.ID, EventType: models.EventPlanting, Date: eventDate(t, 1)}},
		{"missing date", LifecycleEventInput{PlotID: plot.ID, EventType: models.EventPlanting, Title: "x"}},
		{"unknown type", LifecycleEventInput{PlotID: plot.ID, EventType: "SOIL_TEST", Title: "x", Date: eventDate(t, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RecordLifecycleEvent(db, tt.in); !errors.Is(err, models.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	var count int64
	db.Model(&models.LifecycleEvent{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no event rows after rejected inputs, found %d", count)
	}
}

func TestRemoveLifecycleEventRederivesStatus(t *testing.T) {
	db := newTestDB(t)
	plot := seedPlot(t, db, models.StatusPlanting, nil)

	if _, err := RecordLifecycleEvent(db, LifecycleEventInput{
		PlotID: plot.ID, EventType: models.EventPlanting, Title: "sowing", Date: eventDate(t, 1),
	}); err != nil {
		t.Fatalf("record planting failed: %v", err)
	}
	harvest, err := RecordLifecycleEvent(db, LifecycleEventInput{
		PlotID: plot.ID, EventType: models.EventHarvesting, Title: "harvest", Date: eventDate(t, 20),
	})
	if err != nil {
		t.Fatalf("record harvest failed: %v", err)
	}
	if got := plotStatus(t, db, plot.ID); got != models.StatusHarvested {
		t.Fatalf("status before delete = %q, expected %q", got, models.StatusHarvested)
	}

	if err := RemoveLifecycleEvent(db, harvest.ID); err != nil {
		t.Fatalf("RemoveLifecycleEvent failed: %v", err)
	}
	if got := plotStatus(t, db, plot.ID); got != models.StatusPlanting {
		t.Errorf("status after deleting harvest = %q, expected %q", got, models.StatusPlanting)
	}

	if err := RemoveLifecycleEvent(db, harvest.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestApplyLifecycleEventPatchRederivesStatus(t *testing.T) {
	db := newTestDB(t)
	plot := seedPlot(t, db, models.StatusPlanting, nil)

	event, err := RecordLifecycleEvent(db, LifecycleEventInput{
		PlotID: plot.ID, EventType: models.EventIrrigation, Title: "watering", Date: eventDate(t, 5),
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if got := plotStatus(t, db, plot.ID); got != models.StatusGrowing {
		t.Fatalf("status before patch = %q, expected %q", got, models.StatusGrowing)
	}

	harvestType := models.EventHarvesting
	updated, err := ApplyLifecycleEventPatch(db, event.ID, LifecycleEventPatch{EventType: &harvestType})
	if err != nil {
		t.Fatalf("ApplyLifecycleEventPatch failed: %v", err)
	}
	if updated.EventType != models.EventHarvesting {
		t.Errorf("patched event type = %q, expected %q", updated.EventType, models.EventHarvesting)
	}
	if got := plotStatus(t, db, plot.ID); got != models.StatusHarvested {
		t.Errorf("status after patch = %q, expected %q", got, models.StatusHarvested)
	}

	bad := "SOIL_TEST"
	if _, err := ApplyLifecycleEventPatch(db, event.ID, LifecycleEventPatch{EventType: &bad}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown type, got %v", err)
	}
	if _, err := ApplyLifecycleEventPatch(db, 9999, LifecycleEventPatch{}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing event, got %v", err)
	}
}
