package handlers

import (
	"log"
	"net/http"
	"time"

	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

// Flat per-kg rate used to approximate revenue from recorded yields until
// actual sales tracking exists.
const revenuePerYieldUnit = 2.0

type financialSummary struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
}

type monthlyExpense struct {
	Month         string  `json:"month"`
	TotalExpenses float64 `json:"totalExpenses"`
}

type financialOverview struct {
	Summary          financialSummary `json:"summary"`
	MonthlyBreakdown []monthlyExpense `json:"monthlyBreakdown"`
}

// GetFinancialOverview aggregates expenses against estimated harvest
// revenue for the requested timeframe (week or month-to-date).
func GetFinancialOverview(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	var start time.Time
	if r.URL.Query().Get("timeframe") == "week" {
		start = now.AddDate(0, 0, -7)
	} else {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	plotID := r.URL.Query().Get("plot_id")

	expenseQuery := config.DB.Model(&models.Expense{}).Where("date BETWEEN ? AND ?", start, now)
	yieldQuery := config.DB.Model(&models.LifecycleEvent{}).
		Where("date BETWEEN ? AND ?", start, now).
		Where("event_type LIKE ?", "%HARVEST%").
		Where("yield_amount IS NOT NULL")
	if plotID != "" {
		expenseQuery = expenseQuery.Where("plot_id = ?", plotID)
		yieldQuery = yieldQuery.Where("plot_id = ?", plotID)
	}

	var totalExpenses float64
	if err := expenseQuery.Select("COALESCE(SUM(amount), 0)").Scan(&totalExpenses).Error; err != nil {
		log.Printf("financial overview expense sum failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch financial overview")
		return
	}

	var totalYield float64
	if err := yieldQuery.Select("COALESCE(SUM(yield_amount), 0)").Scan(&totalYield).Error; err != nil {
		log.Printf("financial overview yield sum failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch financial overview")
		return
	}

	monthly := []monthlyExpense{}
	monthlyQuery := config.DB.Model(&models.Expense{}).
		Select("to_char(date_trunc('month', date), 'YYYY-MM') AS month, SUM(amount) AS total_expenses").
		Where("date BETWEEN ? AND ?", now.AddDate(0, -5, 0), now).
		Group("date_trunc('month', date)").
		Order("date_trunc('month', date) ASC")
	if plotID != "" {
		monthlyQuery = monthlyQuery.Where("plot_id = ?", plotID)
	}
	if err := monthlyQuery.Scan(&monthly).Error; err != nil {
		log.Printf("financial overview monthly breakdown failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch financial overview")
		return
	}

	revenue := totalYield * revenuePerYieldUnit
	overview := financialOverview{
		Summary: financialSummary{
			TotalRevenue:  revenue,
			TotalExpenses: totalExpenses,
			NetProfit:     revenue - totalExpenses,
		},
		MonthlyBreakdown: monthly,
	}
	utils.WriteSuccess(w, http.StatusOK, overview, "Financial overview retrieved successfully")
}

type plotYield struct {
	PlotID     uint    `json:"plotId"`
	PlotName   string  `json:"plotName"`
	CropName   string  `json:"cropName"`
	TotalYield float64 `json:"totalYield"`
	YieldUnit  string  `json:"yieldUnit"`
	Harvests   int64   `json:"harvests"`
}

// GetYieldAnalysis sums recorded harvest yields per plot.
func GetYieldAnalysis(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Model(&models.LifecycleEvent{}).
		Select(`lifecycle_events.plot_id AS plot_id,
			plots.name AS plot_name,
			COALESCE(crops.name, '') AS crop_name,
			SUM(lifecycle_events.yield_amount) AS total_yield,
			MAX(lifecycle_events.yield_unit) AS yield_unit,
			COUNT(*) AS harvests`).
		Joins("JOIN plots ON plots.id = lifecycle_events.plot_id").
		Joins("LEFT JOIN crops ON crops.id = lifecycle_events.crop_id").
		Where("lifecycle_events.event_type LIKE ?", "%HARVEST%").
		Where("lifecycle_events.yield_amount IS NOT NULL").
		Group("lifecycle_events.plot_id, plots.name, crops.name")

	if plotID := r.URL.Query().Get("plot_id"); plotID != "" {
		query = query.Where("lifecycle_events.plot_id = ?", plotID)
	}

	var yields []plotYield
	if err := query.Scan(&yields).Error; err != nil {
		log.Printf("yield analysis failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch yield analysis")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, yields, "Yield analysis retrieved successfully")
}
