package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

// LifecycleEventInput is the payload for recording an agronomic event.
type LifecycleEventInput struct {
	PlotID      uint            `json:"plot_id"`
	CropID      *uint           `json:"crop_id,omitempty"`
	EventType   string          `json:"event_type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Date        models.JSONTime `json:"date"`
	Notes       string          `json:"notes,omitempty"`
	YieldAmount *float64        `json:"yield_amount,omitempty"`
	YieldUnit   string          `json:"yield_unit,omitempty"`
	Photos      datatypes.JSON  `json:"photos,omitempty"`
}

// RecordLifecycleEvent validates and persists an event, then re-derives the
// plot's status from its latest event. The status write is best-effort: a
// failure there never rolls back the event insert.
func RecordLifecycleEvent(db *gorm.DB, in LifecycleEventInput) (*models.LifecycleEvent, error) {
	if in.PlotID == 0 || in.EventType == "" || in.Title == "" || in.Date.IsZero() {
		return nil, fmt.Errorf("%w: missing required fields: plot_id, event_type, title, date", models.ErrValidation)
	}
	if !models.ValidEventType(in.EventType) {
		return nil, fmt.Errorf("%w: unknown event_type %q", models.ErrValidation, in.EventType)
	}

	var plot models.Plot
	if err := db.Where("id = ? AND is_active = ?", in.PlotID, true).First(&plot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plot %d", models.ErrNotFound, in.PlotID)
		}
		return nil, err
	}

	event := models.LifecycleEvent{
		PlotID:      in.PlotID,
		CropID:      in.CropID,
		EventType:   strings.ToUpper(strings.TrimSpace(in.EventType)),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Notes:       in.Notes,
		YieldAmount: in.YieldAmount,
		YieldUnit:   in.YieldUnit,
		Photos:      in.Photos,
	}
	if err := db.Create(&event).Error; err != nil {
		return nil, err
	}

	SyncPlotStatus(db, in.PlotID)

	if err := db.Preload("Plot").First(&event, event.ID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// LifecycleEventPatch applies a partial update; nil fields are untouched.
type LifecycleEventPatch struct {
	CropID      *uint            `json:"crop_id,omitempty"`
	EventType   *string          `json:"event_type,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *models.JSONTime `json:"date,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	YieldAmount *float64         `json:"yield_amount,omitempty"`
	YieldUnit   *string          `json:"yield_unit,omitempty"`
	Photos      datatypes.JSON   `json:"photos,omitempty"`
}

// ApplyLifecycleEventPatch updates an existing event and re-derives the
// plot status, since the latest-event ordering may have changed.
func ApplyLifecycleEventPatch(db *gorm.DB, id uint, patch LifecycleEventPatch) (*models.LifecycleEvent, error) {
	var event models.LifecycleEvent
	if err := db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: lifecycle event %d", models.ErrNotFound, id)
		}
		return nil, err
	}

	if patch.EventType != nil {
		if !models.ValidEventType(*patch.EventType) {
			return nil, fmt.Errorf("%w: unknown event_type %q", models.ErrValidation, *patch.EventType)
		}
		event.EventType = strings.ToUpper(strings.TrimSpace(*patch.EventType))
	}
	if patch.CropID != nil {
		event.CropID = patch.CropID
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Notes != nil {
		event.Notes = *patch.Notes
	}
	if patch.YieldAmount != nil {
		event.YieldAmount = patch.YieldAmount
	}
	if patch.YieldUnit != nil {
		event.YieldUnit = *patch.YieldUnit
	}
	if patch.Photos != nil {
		event.Photos = patch.Photos
	}

	if err := db.Save(&event).Error; err != nil {
		return nil, err
	}

	SyncPlotStatus(db, event.PlotID)

	if err := db.Preload("Plot").Preload("Crop").First(&event, event.ID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// RemoveLifecycleEvent deletes an event and re-derives the plot status from
// whatever is now the latest event. If the plot has no events left the
// status is left as last derived.
func RemoveLifecycleEvent(db *gorm.DB, id uint) error {
	var event models.LifecycleEvent
	if err := db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: lifecycle event %d", models.ErrNotFound, id)
		}
		return err
	}

	if err := db.Delete(&event).Error; err != nil {
		return err
	}

	SyncPlotStatus(db, event.PlotID)
	return nil
}

// SyncPlotStatus writes the status implied by the plot's most recent
// lifecycle event onto the plot row. Plots with no events keep their
// current status. Write failures are logged, not propagated: the event
// record is the primary fact, the status a derived convenience.
func SyncPlotStatus(db *gorm.DB, plotID uint) {
	var latest models.LifecycleEvent
	err := db.Where("plot_id = ?", plotID).Order("date DESC").First(&latest).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("failed to look up latest lifecycle event for plot %d: %v", plotID, err)
		}
		return
	}

	status := models.StatusForEventType(latest.EventType)
	if err := db.Model(&models.Plot{}).Where("id = ?", plotID).Update("status", status).Error; err != nil {
		log.Printf("failed to update plot %d status to %s: %v", plotID, status, err)
		return
	}
	log.Printf("Updated plot %d status to %s based on lifecycle event %s", plotID, status, latest.EventType)
}

// --- HTTP handlers ---

func CreateLifecycleEvent(w http.ResponseWriter, r *http.Request) {
	var in LifecycleEventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	event, err := RecordLifecycleEvent(config.DB, in)
	if err != nil {
		writeLifecycleError(w, err, "Failed to create lifecycle event")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, event, "Lifecycle event created successfully")
}

func UpdateLifecycleEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch LifecycleEventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	event, err := ApplyLifecycleEventPatch(config.DB, id, patch)
	if err != nil {
		writeLifecycleError(w, err, "Failed to update lifecycle event")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, event, "Lifecycle event updated successfully")
}

func DeleteLifecycleEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := RemoveLifecycleEvent(config.DB, id); err != nil {
		writeLifecycleError(w, err, "Failed to delete lifecycle event")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, nil, "Lifecycle event deleted successfully")
}

func GetAllLifecycleEvents(w http.ResponseWriter, r *http.Request) {
	p := utils.ParsePagination(r, 10)

	query := config.DB.Model(&models.LifecycleEvent{})
	if plotID := r.URL.Query().Get("plot_id"); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}
	if cropID := r.URL.Query().Get("crop_id"); cropID != "" {
		query = query.Where("crop_id = ?", cropID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch lifecycle events")
		return
	}

	var events []models.LifecycleEvent
	if err := query.Preload("Plot").Preload("Crop").
		Order("date DESC").Limit(p.Limit).Offset(p.Offset()).
		Find(&events).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch lifecycle events")
		return
	}

	utils.WriteSuccessMeta(w, http.StatusOK, events, "Lifecycle events retrieved successfully",
		utils.NewMeta(p.Page, p.Limit, total))
}

func GetLifecycleEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var event models.LifecycleEvent
	if err := config.DB.Preload("Plot").Preload("Crop").First(&event, id).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Lifecycle event not found")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, event, "Lifecycle event retrieved successfully")
}

// GetLifecycleEventTypes returns the taxonomy with display labels so
// clients don't hardcode it.
func GetLifecycleEventTypes(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, models.EventTypeLabels, "Event types retrieved successfully")
}

func writeLifecycleError(w http.ResponseWriter, err error, fallback string) {
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

// pathID parses the {id} route variable, writing a 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
