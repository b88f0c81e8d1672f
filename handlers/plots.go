package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"khet.pk/farm/config"
	"khet.pk/farm/middleware"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

type plotInput struct {
	Name          string         `json:"name"`
	Acreage       float64        `json:"acreage"`
	Status        string         `json:"status"`
	CaretakerID   *uint          `json:"caretaker_id"`
	CurrentCropID *uint          `json:"current_crop_id"`
	Boundary      datatypes.JSON `json:"boundary"`
}

func CreatePlot(w http.ResponseWriter, r *http.Request) {
	var in plotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if in.Name == "" || in.Acreage == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: name, acreage")
		return
	}
	if in.Acreage <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Acreage must be a positive number")
		return
	}

	// Status is only free to choose here; once events exist it is derived.
	status := models.PlotStatus(in.Status)
	if in.Status == "" {
		status = models.StatusPlanting
	} else if !status.Valid() {
		utils.WriteError(w, http.StatusBadRequest, "status must be one of planting, growing, harvested")
		return
	}

	if err := utils.ValidateBoundary(in.Boundary); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	plot := models.Plot{
		Name:          in.Name,
		Acreage:       in.Acreage,
		Status:        status,
		CaretakerID:   in.CaretakerID,
		CurrentCropID: in.CurrentCropID,
		Boundary:      in.Boundary,
		IsActive:      true,
	}
	if user := middleware.GetUser(r); user.ID != uuid.Nil {
		id := user.ID
		plot.OwnerID = &id
	}

	if err := config.DB.Create(&plot).Error; err != nil {
		log.Printf("failed to create plot: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create plot")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, plot, "Plot created successfully")
}

func GetAllPlots(w http.ResponseWriter, r *http.Request) {
	p := utils.ParsePagination(r, 10)

	query := config.DB.Model(&models.Plot{})

	// Inactive (soft-deleted) plots are only visible to admins who ask.
	includeInactive := r.URL.Query().Get("include_inactive") == "true" && middleware.GetRole(r) == models.RoleAdmin
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if caretakerID := r.URL.Query().Get("caretaker_id"); caretakerID != "" {
		query = query.Where("caretaker_id = ?", caretakerID)
	}
	if cropID := r.URL.Query().Get("current_crop_id"); cropID != "" {
		query = query.Where("current_crop_id = ?", cropID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch plots")
		return
	}

	var plots []models.Plot
	if err := query.Preload("Caretaker").Preload("CurrentCrop").
		Order("id ASC").Limit(p.Limit).Offset(p.Offset()).
		Find(&plots).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch plots")
		return
	}

	utils.WriteSuccessMeta(w, http.StatusOK, plots, "Plots retrieved successfully",
		utils.NewMeta(p.Page, p.Limit, total))
}

func GetPlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var plot models.Plot
	if err := config.DB.Preload("Caretaker").Preload("CurrentCrop").
		Where("id = ? AND is_active = ?", id, true).First(&plot).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Plot not found")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, plot, "Plot retrieved successfully")
}

func UpdatePlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var plot models.Plot
	if err := config.DB.Where("id = ? AND is_active = ?", id, true).First(&plot).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Plot not found")
		return
	}

	var in plotInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if in.Name != "" {
		plot.Name = in.Name
	}
	if in.Acreage != 0 {
		if in.Acreage < 0 {
			utils.WriteError(w, http.StatusBadRequest, "Acreage must be a positive number")
			return
		}
		plot.Acreage = in.Acreage
	}
	if in.Status != "" {
		status := models.PlotStatus(in.Status)
		if !status.Valid() {
			utils.WriteError(w, http.StatusBadRequest, "status must be one of planting, growing, harvested")
			return
		}
		plot.Status = status
	}
	if in.CaretakerID != nil {
		plot.CaretakerID = in.CaretakerID
	}
	if in.CurrentCropID != nil {
		plot.CurrentCropID = in.CurrentCropID
	}
	if in.Boundary != nil {
		if err := utils.ValidateBoundary(in.Boundary); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		plot.Boundary = in.Boundary
	}

	if err := config.DB.Save(&plot).Error; err != nil {
		log.Printf("failed to update plot %d: %v", id, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update plot")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, plot, "Plot updated successfully")
}

// DeletePlot is a soft delete: the row stays, reads stop returning it.
func DeletePlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var plot models.Plot
	if err := config.DB.Where("id = ? AND is_active = ?", id, true).First(&plot).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Plot not found")
		return
	}

	plot.IsActive = false
	if err := config.DB.Save(&plot).Error; err != nil {
		log.Printf("failed to delete plot %d: %v", id, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete plot")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, nil, "Plot deleted successfully")
}

// RestorePlot reactivates a soft-deleted plot. Admin only (route-gated).
func RestorePlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var plot models.Plot
	if err := config.DB.First(&plot, id).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Plot not found")
		return
	}

	plot.IsActive = true
	if err := config.DB.Save(&plot).Error; err != nil {
		log.Printf("failed to restore plot %d: %v", id, err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to restore plot")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, plot, "Plot restored successfully")
}

// LocatePlot finds the active plot whose boundary contains the given
// coordinate, for field workers logging events by GPS position.
func LocatePlot(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		utils.WriteError(w, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	var plots []models.Plot
	if err := config.DB.Where("is_active = ? AND boundary IS NOT NULL", true).Find(&plots).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch plots")
		return
	}

	point := utils.Coordinate{Lat: lat, Lng: lng}
	for _, plot := range plots {
		boundary, err := utils.ParseBoundary(plot.Boundary)
		if err != nil {
			log.Printf("plot %d has an unparseable boundary: %v", plot.ID, err)
			continue
		}
		if boundary.Contains(point) {
			utils.WriteSuccess(w, http.StatusOK, plot, "Plot located successfully")
			return
		}
	}

	utils.WriteError(w, http.StatusNotFound, "No plot contains the given point")
}
