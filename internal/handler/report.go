package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prajvalpatil/cashbook-prototype/internal/ledger"
	"github.com/prajvalpatil/cashbook-prototype/internal/models"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ReportHandler serves the read-only aggregate views over one project's
// entries, plus the CSV and Excel report exports.
type ReportHandler struct {
	Store *store.Store
}

func NewReportHandler(st *store.Store) *ReportHandler {
	return &ReportHandler{Store: st}
}

// projectEntries resolves the :id param and loads the project's entries.
func (h *ReportHandler) projectEntries(c *gin.Context) (models.Project, []models.Entry, bool) {
	project, err := h.Store.GetProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return models.Project{}, nil, false
	}
	entries, err := h.Store.EntriesByProject(project.ID)
	if err != nil {
		respondError(c, err)
		return models.Project{}, nil, false
	}
	return project, entries, true
}

// Dashboard returns the headline totals plus the five most recent entries.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	_, entries, ok := h.projectEntries(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"totals": ledger.Dashboard(entries),
		"recent": ledger.Recent(entries, 5),
	})
}

func (h *ReportHandler) Stocks(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	_, entries, ok := h.projectEntries(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"stocks": ledger.Stocks(entries)})
}

func (h *ReportHandler) Ledgers(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	_, entries, ok := h.projectEntries(c)
	if !ok {
		return
	}
	suppliers, labor := ledger.PartyLedgers(entries)
	util.Success(c, util.Response{
		"suppliers": suppliers,
		"labor":     labor,
	})
}

// Report returns the filtered entry list with footer totals. Filters come
// as start/end dates (inclusive) and an optional category.
func (h *ReportHandler) Report(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	_, entries, ok := h.projectEntries(c)
	if !ok {
		return
	}
	filtered := h.filter(c, entries)
	util.Success(c, util.Response{
		"entries": filtered,
		"totals":  ledger.Totals(filtered),
	})
}

func (h *ReportHandler) filter(c *gin.Context, entries []models.Entry) []models.Entry {
	return ledger.FilterEntries(entries,
		c.Query("start"),
		c.Query("end"),
		c.Query("category"),
	)
}

// reportRow flattens one entry into the export columns shared by the CSV
// and Excel writers.
func reportRow(e models.Entry) []interface{} {
	entryType := "Cash Out"
	if e.Type == ledger.TypeCashIn {
		entryType = "Cash In"
	}
	category := e.Category
	if category == "" {
		category = "General"
	}
	details := e.ItemName
	if details == "" {
		details = e.Notes
	}
	return []interface{}{
		e.Date, entryType, category, e.PartyName, details,
		e.Quantity, e.Rate, e.Amount, e.Paid, e.Due, e.PaymentMode,
	}
}

var reportHeader = []string{
	"Date", "Type", "Category", "Party", "Details",
	"Quantity", "Rate", "Total Amount", "Paid Amount", "Due Amount", "Payment Mode",
}

func exportName(project models.Project, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(project.Name), " ", "_")
	if name == "" {
		name = "project"
	}
	return fmt.Sprintf("%s_Report_%s.%s", name, time.Now().Format("2006-01-02"), ext)
}

// ExportCSV streams the filtered report as a CSV download.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	project, entries, ok := h.projectEntries(c)
	if !ok {
		return
	}
	filtered := h.filter(c, entries)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(reportHeader)
	for _, e := range filtered {
		row := reportRow(e)
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		_ = w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(project, "csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX writes the filtered report as a styled Excel workbook with a
// totals footer.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	project, entries, ok := h.projectEntries(c)
	if !ok {
		return
	}
	filtered := h.filter(c, entries)
	totals := ledger.Totals(filtered)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	for i, title := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	_ = f.SetRowStyle(sheet, 1, 1, headerStyle)

	rowNum := 2
	for _, e := range filtered {
		for i, v := range reportRow(e) {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
			_ = f.SetCellValue(sheet, cell, v)
		}
		rowNum++
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	footer := []interface{}{
		"TOTALS", "", "", "", "", "", "",
		totals.Amount, totals.Paid, totals.Due, "",
	}
	for i, v := range footer {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
		_ = f.SetCellValue(sheet, cell, v)
	}
	_ = f.SetRowStyle(sheet, rowNum, rowNum, boldStyle)
	_ = f.SetColWidth(sheet, "A", "K", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(project, "xlsx")))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
