package handlers

import (
	"encoding/json"
	"net/http"

	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

func GetAllFertilizers(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Model(&models.Fertilizer{})
	if plotID := r.URL.Query().Get("plot_id"); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}

	var applications []models.Fertilizer
	if err := query.Preload("Plot").Preload("Crop").Order("date DESC").Find(&applications).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch fertilizer applications")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, applications, "Fertilizer applications retrieved successfully")
}

func CreateFertilizer(w http.ResponseWriter, r *http.Request) {
	var item models.Fertilizer
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if item.PlotID == 0 || item.FertilizerType == "" || item.Date.IsZero() {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: plotId, fertilizerType, date")
		return
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record fertilizer application")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, item, "Fertilizer application recorded successfully")
}
