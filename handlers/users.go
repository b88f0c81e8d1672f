package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"khet.pk/farm/config"
	"khet.pk/farm/middleware"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

// GetAllUsers lists accounts for administrators, newest first.
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	p := utils.ParsePagination(r, 20)

	query := config.DB.Model(&models.User{})
	if role := r.URL.Query().Get("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&users).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	utils.WriteSuccessMeta(w, http.StatusOK, users, "Users retrieved successfully", utils.NewMeta(p.Page, p.Limit, total))
}

// DeactivateUser disables an account without removing its history.
// Admins cannot deactivate themselves.
func DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if claims := middleware.GetClaims(r); claims != nil && claims.UserID == id {
		utils.WriteError(w, http.StatusBadRequest, "Cannot deactivate your own account")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	user.IsActive = false
	if err := config.DB.Save(&user).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to deactivate user")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, user, "User deactivated successfully")
}
