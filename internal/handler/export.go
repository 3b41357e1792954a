package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kartik0x00/Budget-Formula/internal/budget"
	"github.com/kartik0x00/Budget-Formula/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出某个月的预算明细（xlsx / csv）
type ExportHandler struct {
	Service *budget.Service
}

func NewExportHandler(svc *budget.Service) *ExportHandler {
	return &ExportHandler{Service: svc}
}

var exportHeaders = []string{
	"Date", "Income", "Income source", "Expenses", "Expense remarks",
	"Fixed pays", "Fixed pays remarks",
}

// ExportCSV 导出为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	month, year, err := parsePeriod(c)
	if err != nil {
		util.Error(c, err)
		return
	}

	summary, err := h.Service.GetSummary(month, year)
	if err != nil {
		util.Error(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budget_%04d-%02d.csv\"", year, month))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range summary.Entries {
		e := &summary.Entries[i]
		writer.Write([]string{
			util.FormatDate(e.Date),
			strconv.FormatInt(e.Income, 10),
			e.IncomeSource,
			strconv.FormatInt(e.Expenses, 10),
			e.ExpenseRemarks,
			strconv.FormatInt(e.FixedPays, 10),
			e.FixedPaysRemarks,
		})
	}

	// totals row, plus what is left after expenses and fixed pays
	writer.Write([]string{
		"Total",
		strconv.FormatInt(summary.Totals.Income, 10),
		"",
		strconv.FormatInt(summary.Totals.Expenses, 10),
		"",
		strconv.FormatInt(summary.Totals.FixedPays, 10),
		fmt.Sprintf("Left: %d", summary.Left),
	})
}

// ExportXLSX 导出为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	month, year, err := parsePeriod(c)
	if err != nil {
		util.Error(c, err)
		return
	}

	summary, err := h.Service.GetSummary(month, year)
	if err != nil {
		util.Error(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := fmt.Sprintf("%04d-%02d", year, month)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, fmt.Errorf("new sheet: %w", err))
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range summary.Entries {
		e := &summary.Entries[idx]
		row := idx + 2

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), util.FormatDate(e.Date))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Income)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.IncomeSource)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Expenses)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.ExpenseRemarks)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), e.FixedPays)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), e.FixedPaysRemarks)
	}

	totalsRow := len(summary.Entries) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalsRow), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", totalsRow), summary.Totals.Income)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", totalsRow), summary.Totals.Expenses)
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", totalsRow), summary.Totals.FixedPays)
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalsRow), fmt.Sprintf("Left: %d", summary.Left))

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 24)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 24)
	f.SetColWidth(sheetName, "F", "F", 10)
	f.SetColWidth(sheetName, "G", "G", 24)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budget_%04d-%02d.xlsx\"", year, month))

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
