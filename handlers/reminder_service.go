package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"khet.pk/farm/config"
	"khet.pk/farm/models"
)

// careActivities are the reminder types synthesized every week for each
// plot under cultivation. Harvest reminders are only ever created manually.
var careActivities = []models.ReminderType{
	models.ReminderWatering,
	models.ReminderFertilizer,
	models.ReminderSpray,
}

// reminderWindowDays is how far ahead generated reminders are due, and the
// width of the dedup window that makes re-runs within a week no-ops.
const reminderWindowDays = 7

// ReminderService owns reminder generation and queries.
type ReminderService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReminderService creates a reminder service on the shared connection.
func NewReminderService() *ReminderService {
	return &ReminderService{db: config.DB, now: time.Now}
}

// NewReminderServiceWithDB creates a reminder service on a specific
// connection, used by the scheduler and by tests.
func NewReminderServiceWithDB(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db, now: time.Now}
}

// GenerateWeeklyReminders creates upcoming care reminders for every active
// plot under cultivation (status planting or growing) that has a current
// crop. For each of watering/fertilizer/spray a reminder due in 7 days is
// created unless one for the same plot, crop and type is already due
// inside the window. Returns only the newly created reminders.
//
// Plots are walked sequentially; the whole run is idempotent per calendar
// week because the existence check covers the full upcoming window.
func (s *ReminderService) GenerateWeeklyReminders() ([]models.Reminder, error) {
	now := s.now()
	due := now.AddDate(0, 0, reminderWindowDays)

	var plots []models.Plot
	err := s.db.Preload("CurrentCrop").
		Where("status IN ? AND current_crop_id IS NOT NULL AND is_active = ?",
			[]models.PlotStatus{models.StatusPlanting, models.StatusGrowing}, true).
		Find(&plots).Error
	if err != nil {
		return nil, err
	}

	created := []models.Reminder{}
	for _, plot := range plots {
		if plot.CurrentCrop == nil {
			// Dangling crop reference; skip rather than create orphaned reminders.
			log.Printf("skipping plot %d: current crop %v cannot be resolved", plot.ID, plot.CurrentCropID)
			continue
		}

		for _, activity := range careActivities {
			var count int64
			err := s.db.Model(&models.Reminder{}).
				Where("plot_id = ? AND crop_id = ? AND type = ? AND due_date BETWEEN ? AND ?",
					plot.ID, plot.CurrentCrop.ID, activity, now, due).
				Count(&count).Error
			if err != nil {
				return created, err
			}
			if count > 0 {
				continue
			}

			reminder := models.Reminder{
				PlotID:  plot.ID,
				CropID:  plot.CurrentCrop.ID,
				Type:    activity,
				DueDate: due,
				Sent:    false,
				Method:  models.MethodEmail,
			}
			if err := s.db.Create(&reminder).Error; err != nil {
				return created, err
			}
			created = append(created, reminder)
		}
	}

	return created, nil
}

// MarkAsDone flags a reminder as sent. Marking an already-done reminder is
// a no-op that still succeeds.
func (s *ReminderService) MarkAsDone(id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.db.First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reminder %d", models.ErrNotFound, id)
		}
		return nil, err
	}

	if !reminder.Sent {
		reminder.Sent = true
		if err := s.db.Save(&reminder).Error; err != nil {
			return nil, err
		}
	}
	return &reminder, nil
}

// UpcomingReminders returns unsent reminders due within the next `days`
// days (default window 7), optionally filtered by type, soonest first.
func (s *ReminderService) UpcomingReminders(days int, reminderType models.ReminderType) ([]models.Reminder, error) {
	if days <= 0 {
		days = reminderWindowDays
	}
	now := s.now()

	query := s.db.Where("due_date BETWEEN ? AND ? AND sent = ?", now, now.AddDate(0, 0, days), false)
	if reminderType != "" {
		if !reminderType.Valid() {
			return nil, fmt.Errorf("%w: unknown reminder type %q", models.ErrValidation, reminderType)
		}
		query = query.Where("type = ?", reminderType)
	}

	var reminders []models.Reminder
	if err := query.Order("due_date ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// AllReminders returns every reminder ordered by due date.
func (s *ReminderService) AllReminders() ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := s.db.Order("due_date ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// RemindersByPlot returns a plot's reminders ordered by due date.
func (s *ReminderService) RemindersByPlot(plotID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := s.db.Where("plot_id = ?", plotID).Order("due_date ASC").Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// CreateReminder stores a manually scheduled reminder.
func (s *ReminderService) CreateReminder(reminder *models.Reminder) error {
	if reminder.PlotID == 0 || reminder.CropID == 0 || reminder.DueDate.IsZero() {
		return fmt.Errorf("%w: missing required fields: plot_id, crop_id, due_date", models.ErrValidation)
	}
	if !reminder.Type.Valid() {
		return fmt.Errorf("%w: unknown reminder type %q", models.ErrValidation, reminder.Type)
	}
	if reminder.Method == "" {
		reminder.Method = models.MethodEmail
	}
	return s.db.Create(reminder).Error
}
