package handlers

import (
	"encoding/json"
	"net/http"

	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

func GetAllExpenses(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Model(&models.Expense{})
	if plotID := r.URL.Query().Get("plot_id"); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}
	if expenseType := r.URL.Query().Get("type"); expenseType != "" {
		query = query.Where("type = ?", expenseType)
	}

	var expenses []models.Expense
	if err := query.Preload("Plot").Preload("Crop").Order("date DESC").Find(&expenses).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, expenses, "Expenses retrieved successfully")
}

func CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if expense.PlotID == 0 || expense.Type == "" || expense.Amount <= 0 || expense.Date.IsZero() {
		utils.WriteError(w, http.StatusBadRequest, "Missing required fields: plotId, type, amount, date")
		return
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record expense")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, expense, "Expense recorded successfully")
}
