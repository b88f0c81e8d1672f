package handlers

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
	"khet.pk/farm/models"
)

func newReminderFixture(t *testing.T) (*gorm.DB, *ReminderService, time.Time) {
	t.Helper()
	db := newTestDB(t)
	fixed := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	svc := NewReminderServiceWithDB(db)
	svc.now = func() time.Time { return fixed }
	return db, svc, fixed
}

func TestGenerateWeeklyRemindersCreatesCareSet(t *testing.T) {
	db, svc, fixed := newReminderFixture(t)
	crop := seedCrop(t, db, "Wheat")
	plot := seedPlot(t, db, models.StatusPlanting, &crop.ID)

	created, err := svc.GenerateWeeklyReminders()
	if err != nil {
		t.Fatalf("GenerateWeeklyReminders failed: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created %d reminders, expected 3", len(created))
	}

	seen := map[models.ReminderType]bool{}
	wantDue := fixed.AddDate(0, 0, 7)
	for _, reminder := range created {
		seen[reminder.Type] = true
		if reminder.PlotID != plot.ID {
			t.Errorf("reminder plot = %d, expected %d", reminder.PlotID, plot.ID)
		}
		if reminder.CropID != crop.ID {
			t.Errorf("reminder crop = %d, expected %d", reminder.CropID, crop.ID)
		}
		if !reminder.DueDate.Equal(wantDue) {
			t.Errorf("reminder due = %v, expected %v", reminder.DueDate, wantDue)
		}
		if reminder.Sent {
			t.Error("new reminder should not be marked sent")
		}
		if reminder.Method != models.MethodEmail {
			t.Errorf("reminder method = %q, expected %q", reminder.Method, models.MethodEmail)
		}
	}
	for _, want := range []models.ReminderType{models.ReminderWatering, models.ReminderFertilizer, models.ReminderSpray} {
		if !seen[want] {
			t.Errorf("missing %s reminder", want)
		}
	}
}

func TestGenerateWeeklyRemindersIsIdempotent(t *testing.T) {
	db, svc, _ := newReminderFixture(t)
	crop := seedCrop(t, db, "Wheat")
	seedPlot(t, db, models.StatusGrowing, &crop.ID)

	first, err := svc.GenerateWeeklyReminders()
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("first run created %d reminders, expected 3", len(first))
	}

	second, err := svc.GenerateWeeklyReminders()
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second run created %d reminders, expected 0", len(second))
	}

	var total int64
	db.Model(&models.Reminder{}).Count(&total)
	if total != 3 {
		t.Errorf("total reminders = %d, expected 3", total)
	}
}

func TestGenerateWeeklyRemindersSkipsIneligiblePlots(t *testing.T) {
	db, svc, _ := newReminderFixture(t)
	crop := seedCrop(t, db, "Rice")

	// Harvested, cropless, and deactivated plots all sit outside the
	// generation set.
	seedPlot(t, db, models.StatusHarvested, &crop.ID)
	seedPlot(t, db, models.StatusPlanting, nil)
	inactive := seedPlot(t, db, models.StatusGrowing, &crop.ID)
	if err := db.Model(&models.Plot{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate plot: %v", err)
	}

	created, err := svc.GenerateWeeklyReminders()
	if err != nil {
		t.Fatalf("GenerateWeeklyReminders failed: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d reminders for ineligible plots, expected 0", len(created))
	}
}

func TestGenerateWeeklyRemindersSkipsDanglingCrop(t *testing.T) {
	db, svc, _ := newReminderFixture(t)
	missing := uint(999)
	seedPlot(t, db, models.StatusGrowing, &missing)

	created, err := svc.GenerateWeeklyReminders()
	if err != nil {
		t.Fatalf("GenerateWeeklyReminders failed: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created %d reminders for dangling crop reference, expected 0", len(created))
	}
}

func TestMarkAsDone(t *testing.T) {
	db, svc, fixed := newReminderFixture(t)
	crop := seedCrop(t, db, "Wheat")
	plot := seedPlot(t, db, models.StatusGrowing, &crop.ID)

	reminder := models.Reminder{
		PlotID: plot.ID, CropID: crop.ID, Type: models.ReminderWatering,
		DueDate: fixed.AddDate(0, 0, 2), Method: models.MethodEmail,
	}
	if err := db.Create(&reminder).Error; err != nil {
		t.Fatalf("failed to seed reminder: %v", err)
	}

	done, err := svc.MarkAsDone(reminder.ID)
	if err != nil {
		t.Fatalf("MarkAsDone failed: %v", err)
	}
	if !done.Sent {
		t.Error("reminder should be sent after MarkAsDone")
	}

	again, err := svc.MarkAsDone(reminder.ID)
	if err != nil {
		t.Fatalf("repeated MarkAsDone should succeed, got %v", err)
	}
	if !again.Sent {
		t.Error("reminder should stay sent")
	}

	if _, err := svc.MarkAsDone(12345); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing reminder, got %v", err)
	}
}

func TestUpcomingReminders(t *testing.T) {
	db, svc, fixed := newReminderFixture(t)
	crop := seedCrop(t, db, "Wheat")
	plot := seedPlot(t, db, models.StatusGrowing, &crop.ID)

	seed := func(due time.Time, rtype models.ReminderType, sent bool) {
		t.Helper()
		reminder := models.Reminder{
			PlotID: plot.ID, CropID: crop.ID, Type: rtype,
			DueDate: due, Sent: sent, Method: models.MethodEmail,
		}
		if err := db.Create(&reminder).Error; err != nil {
			t.Fatalf("failed to seed reminder: %v", err)
		}
	}

	seed(fixed.AddDate(0, 0, 2), models.ReminderWatering, false)
	seed(fixed.AddDate(0, 0, 5), models.ReminderSpray, false)
	seed(fixed.AddDate(0, 0, 3), models.ReminderFertilizer, true) // already sent
	seed(fixed.AddDate(0, 0, 10), models.ReminderWatering, false) // past window
	seed(fixed.AddDate(0, 0, -1), models.ReminderWatering, false) // overdue

	upcoming, err := svc.UpcomingReminders(0, "")
	if err != nil {
		t.Fatalf("UpcomingReminders failed: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("default window returned %d reminders, expected 2", len(upcoming))
	}
	if !upcoming[0].DueDate.Before(upcoming[1].DueDate) {
		t.Error("reminders should be ordered soonest first")
	}

	wide, err := svc.UpcomingReminders(14, "")
	if err != nil {
		t.Fatalf("UpcomingReminders(14) failed: %v", err)
	}
	if len(wide) != 3 {
		t.Errorf("14-day window returned %d reminders, expected 3", len(wide))
	}

	watering, err := svc.UpcomingReminders(14, models.ReminderWatering)
	if err != nil {
		t.Fatalf("type-filtered UpcomingReminders failed: %v", err)
	}
	if len(watering) != 2 {
		t.Errorf("watering filter returned %d reminders, expected 2", len(watering))
	}

	if _, err := svc.UpcomingReminders(7, "mow"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected ErrValidation for unknown type, got %v", err)
	}
}

func TestCreateReminder(t *testing.T) {
	db, svc, fixed := newReminderFixture(t)
	crop := seedCrop(t, db, "Wheat")
	plot := seedPlot(t, db, models.StatusGrowing, &crop.ID)

	reminder := models.Reminder{
		PlotID: plot.ID, CropID: crop.ID, Type: models.ReminderHarvest,
		DueDate: fixed.AddDate(0, 0, 30),
	}
	if err := svc.CreateReminder(&reminder); err != nil {
		t.Fatalf("CreateReminder failed: %v", err)
	}
	if reminder.Method != models.MethodEmail {
		t.Errorf("method = %q, expected default %q", reminder.Method, models.MethodEmail)
	}

	tests := []struct {
		name     string
		reminder models.Reminder
	}{
		{"missing plot", models.Reminder{CropID: crop.ID, Type: models.ReminderWatering, DueDate: fixed}},
		{"missing crop", models.Reminder{PlotID: plot.ID, Type: models.ReminderWatering, DueDate: fixed}},
		{"missing due date", models.Reminder{PlotID: plot.ID, CropID: crop.ID, Type: models.ReminderWatering}},
		{"unknown type", models.Reminder{PlotID: plot.ID, CropID: crop.ID, Type: "mow", DueDate: fixed}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.reminder
			if err := svc.CreateReminder(&r); !errors.Is(err, models.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}
