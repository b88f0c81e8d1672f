package handlers

import (
	"encoding/json"
	"net/http"

	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

func GetAllCrops(w http.ResponseWriter, r *http.Request) {
	var crops []models.Crop
	if err := config.DB.Order("name ASC").Find(&crops).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch crops")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, crops, "Crops retrieved successfully")
}

func GetCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var crop models.Crop
	if err := config.DB.First(&crop, id).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Crop not found")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, crop, "Crop retrieved successfully")
}

func CreateCrop(w http.ResponseWriter, r *http.Request) {
	var crop models.Crop
	if err := json.NewDecoder(r.Body).Decode(&crop); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if crop.Name == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required field: name")
		return
	}

	if err := config.DB.Create(&crop).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create crop")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, crop, "Crop created successfully")
}

func UpdateCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var crop models.Crop
	if err := config.DB.First(&crop, id).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Crop not found")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&crop); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	crop.ID = id

	if err := config.DB.Save(&crop).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update crop")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, crop, "Crop updated successfully")
}
