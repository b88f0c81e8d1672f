package handlers

import (
	"encoding/json"
	"net/http"

	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

func GetAllIrrigations(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Model(&models.Irrigation{})
	if plotID := r.URL.Query().Get("plot_id"); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}

	var sessions []models.Irrigation
	if err := query.Preload("Plot").Preload("Crop").Order("date DESC").Find(&sessions).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch irrigation records")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, sessions, "Irrigation records retrieved successfully")
}

func CreateIrrigation(w http.ResponseWriter, r *http.Request) {
	var item models.Irrigation
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if item.PlotID == 0 || item.Date.IsZero() {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: plotId, date")
		return
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record irrigation")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, item, "Irrigation recorded successfully")
}
