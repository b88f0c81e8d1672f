package handlers

import (
	"encoding/json"
	"net/http"

	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

func GetAllPesticides(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Model(&models.Pesticide{})
	if plotID := r.URL.Query().Get("plot_id"); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}

	var applications []models.Pesticide
	if err := query.Preload("Plot").Preload("Crop").Order("date DESC").Find(&applications).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch pesticide applications")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, applications, "Pesticide applications retrieved successfully")
}

func CreatePesticide(w http.ResponseWriter, r *http.Request) {
	var item models.Pesticide
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if item.PlotID == 0 || item.PesticideType == "" || item.Date.IsZero() {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: plotId, pesticideType, date")
		return
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record pesticide application")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, item, "Pesticide application recorded successfully")
}
