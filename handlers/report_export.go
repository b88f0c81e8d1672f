package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"khet.pk/farm/config"
	"khet.pk/farm/models"
	"khet.pk/farm/utils"
)

var expenseLedgerColumns = []string{"Date", "Plot", "Crop", "Type", "Amount", "Description"}

// ExportExpenseLedger streams the expense ledger as an xlsx download.
// Accepts the same plot_id and type filters as the JSON listing.
func ExportExpenseLedger(w http.ResponseWriter, r *http.Request) {
	query := config.DB.Model(&models.Expense{}).Preload("Plot").Preload("Crop")
	if plotID := r.URL.Query().Get("plot_id"); plotID != "" {
		query = query.Where("plot_id = ?", plotID)
	}
	if expenseType := r.URL.Query().Get("type"); expenseType != "" {
		query = query.Where("type = ?", expenseType)
	}

	var expenses []models.Expense
	if err := query.Order("date ASC").Find(&expenses).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}

	file, err := buildExpenseWorkbook(expenses)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to write Excel file")
		return
	}

	filename := fmt.Sprintf("expense_ledger_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func buildExpenseWorkbook(expenses []models.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Expenses"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for colIdx, label := range expenseLedgerColumns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheet, cell, label)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	f.SetColWidth(sheet, "A", "F", 18)

	var total float64
	for rowIdx, expense := range expenses {
		row := rowIdx + 2
		plotName := ""
		if expense.Plot != nil {
			plotName = expense.Plot.Name
		}
		cropName := ""
		if expense.Crop != nil {
			cropName = expense.Crop.Name
		}

		values := []interface{}{
			expense.Date.Time().Format("2006-01-02"),
			plotName,
			cropName,
			expense.Type,
			expense.Amount,
			expense.Description,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheet, cell, value)
		}
		total += expense.Amount
	}

	totalRow := len(expenses) + 3
	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	labelCell, _ := excelize.CoordinatesToCellName(4, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	f.SetCellValue(sheet, labelCell, "Total")
	f.SetCellValue(sheet, valueCell, total)
	f.SetCellStyle(sheet, labelCell, valueCell, totalStyle)

	f.DeleteSheet("Sheet1")
	return f, nil
}
