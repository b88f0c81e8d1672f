package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

func GetAllReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := NewReminderService().AllReminders()
	if err != nil {
		writeReminderError(w, err, "Failed to retrieve reminders")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reminders, "Reminders retrieved successfully")
}

func GetRemindersByPlot(w http.ResponseWriter, r *http.Request) {
	plotID, err := strconv.ParseUint(mux.Vars(r)["plotId"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid plot id")
		return
	}

	reminders, err := NewReminderService().RemindersByPlot(uint(plotID))
	if err != nil {
		writeReminderError(w, err, "Failed to retrieve plot reminders")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reminders, "Plot reminders retrieved successfully")
}

func GetUpcomingReminders(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil {
		days = v
	}
	reminderType := models.ReminderType(r.URL.Query().Get("type"))

	reminders, err := NewReminderService().UpcomingReminders(days, reminderType)
	if err != nil {
		writeReminderError(w, err, "Failed to retrieve upcoming reminders")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reminders, "Upcoming reminders retrieved successfully")
}

func CreateReminder(w http.ResponseWriter, r *http.Request) {
	var reminder models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := NewReminderService().CreateReminder(&reminder); err != nil {
		writeReminderError(w, err, "Failed to create reminder")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, reminder, "Reminder created successfully")
}

func MarkReminderDone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	reminder, err := NewReminderService().MarkAsDone(uint(id))
	if err != nil {
		writeReminderError(w, err, "Failed to mark reminder as done")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reminder, "Reminder marked as done successfully")
}

// GenerateWeeklyReminders is the on-demand trigger for the weekly batch.
// It sits behind the cron shared-secret, not the user JWT. Email dispatch
// happens in the background so a slow SMTP host cannot stall the response.
func GenerateWeeklyReminders(w http.ResponseWriter, r *http.Request) {
	created, err := NewReminderService().GenerateWeeklyReminders()
	if err != nil {
		writeReminderError(w, err, "Failed to generate weekly reminders")
		return
	}

	log.Printf("generated %d weekly reminders", len(created))
	go NewNotificationService().DispatchReminders(created)

	utils.WriteSuccess(w, http.StatusCreated, created, "Weekly reminders generated successfully")
}

func writeReminderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		utils.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
