package handlers

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// ScheduleConfig is the weekly firing point for reminder generation.
type ScheduleConfig struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

func (c ScheduleConfig) String() string {
	return fmt.Sprintf("%s %02d:%02d", c.Weekday, c.Hour, c.Minute)
}

// DefaultSchedule fires every Wednesday at 09:00 server time.
var DefaultSchedule = ScheduleConfig{Weekday: time.Wednesday, Hour: 9, Minute: 0}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// ParseSchedule parses "Wednesday 09:00" style schedule strings.
func ParseSchedule(s string) (ScheduleConfig, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return ScheduleConfig{}, fmt.Errorf("schedule must look like %q, got %q", "Wednesday 09:00", s)
	}

	day, ok := weekdays[strings.ToLower(fields[0])]
	if !ok {
		return ScheduleConfig{}, fmt.Errorf("unknown weekday %q", fields[0])
	}

	var hour, minute int
	if _, err := fmt.Sscanf(fields[1], "%d:%d", &hour, &minute); err != nil {
		return ScheduleConfig{}, fmt.Errorf("invalid time %q: %w", fields[1], err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ScheduleConfig{}, fmt.Errorf("time %q out of range", fields[1])
	}

	return ScheduleConfig{Weekday: day, Hour: hour, Minute: minute}, nil
}

// ReminderScheduler fires the weekly reminder generation on a schedule.
// It checks once a minute whether the configured weekday/time has been
// reached, the same shape as an external cron hitting the generate-weekly
// endpoint.
type ReminderScheduler struct {
	service  *ReminderService
	notifier *NotificationService
	schedule ScheduleConfig
	lastRun  time.Time
}

// NewReminderScheduler builds a scheduler from REMINDER_SCHEDULE (falling
// back to the default when unset or malformed).
func NewReminderScheduler() *ReminderScheduler {
	schedule := DefaultSchedule
	if raw := os.Getenv("REMINDER_SCHEDULE"); raw != "" {
		parsed, err := ParseSchedule(raw)
		if err != nil {
			log.Printf("invalid REMINDER_SCHEDULE %q, using default %s: %v", raw, DefaultSchedule, err)
		} else {
			schedule = parsed
		}
	}

	return &ReminderScheduler{
		service:  NewReminderService(),
		notifier: NewNotificationService(),
		schedule: schedule,
	}
}

// Start blocks, ticking every minute. Run it in its own goroutine.
func (rs *ReminderScheduler) Start() {
	log.Printf("Starting reminder scheduler, firing weekly at %s", rs.schedule)

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if rs.Due(time.Now()) {
			rs.run()
		}
	}
}

// Due reports whether the schedule fires at the given instant. A firing
// minute is consumed so a single occurrence never runs twice.
func (rs *ReminderScheduler) Due(now time.Time) bool {
	if now.Weekday() != rs.schedule.Weekday || now.Hour() != rs.schedule.Hour || now.Minute() != rs.schedule.Minute {
		return false
	}
	if rs.lastRun.Truncate(time.Minute).Equal(now.Truncate(time.Minute)) {
		return false
	}
	rs.lastRun = now
	return true
}

func (rs *ReminderScheduler) run() {
	log.Println("Running weekly reminder generation...")
	created, err := rs.service.GenerateWeeklyReminders()
	if err != nil {
		log.Printf("weekly reminder generation failed: %v", err)
		return
	}
	log.Printf("generated %d reminders", len(created))
	go rs.notifier.DispatchReminders(created)
}
