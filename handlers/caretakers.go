package handlers

import (
	"encoding/json"
	"net/http"

	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

func GetAllCaretakers(w http.ResponseWriter, r *http.Request) {
	var caretakers []models.Caretaker
	if err := config.DB.Order("name ASC").Find(&caretakers).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch caretakers")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, caretakers, "Caretakers retrieved successfully")
}

func GetCaretaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var caretaker models.Caretaker
	if err := config.DB.First(&caretaker, id).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "Caretaker not found")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, caretaker, "Caretaker retrieved successfully")
}

func CreateCaretaker(w http.ResponseWriter, r *http.Request) {
	var caretaker models.Caretaker
	if err := json.NewDecoder(r.Body).Decode(&caretaker); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if caretaker.Name == "" || caretaker.ContactInfo == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: name, contactInfo")
		return
	}

	if err := config.DB.Create(&caretaker).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create caretaker")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, caretaker, "Caretaker created successfully")
}
