package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"estoque_backend/internal/models"
	"estoque_backend/internal/services"
	"estoque_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler holds the report and ABC services.
type ReportHandler struct {
	reportService services.ReportService
	abcService    services.ABCService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService, as services.ABCService) *ReportHandler {
	return &ReportHandler{reportService: rs, abcService: as}
}

func bindClosingReportArgs(c *gin.Context) (models.QuoteFilters, string, bool) {
	var filters models.QuoteFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters: "+err.Error(), err.Error()))
		return filters, "", false
	}
	groupBy := c.DefaultQuery("group_by", services.GroupByQuoteNumber)
	return filters, groupBy, true
}

// GetClosingReport aggregates quote lines into the closing report.
func (h *ReportHandler) GetClosingReport(c *gin.Context) {
	filters, groupBy, ok := bindClosingReportArgs(c)
	if !ok {
		return
	}

	report, err := h.reportService.ClosingReport(filters, groupBy)
	if err != nil {
		h.respondReportError(c, err, "GetClosingReport")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportClosingReport renders the closing report as an XLSX download.
func (h *ReportHandler) ExportClosingReport(c *gin.Context) {
	filters, groupBy, ok := bindClosingReportArgs(c)
	if !ok {
		return
	}

	report, err := h.reportService.ClosingReport(filters, groupBy)
	if err != nil {
		h.respondReportError(c, err, "ExportClosingReport")
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	rows := [][]interface{}{
		{"Group", "Supplier", "Status", "Lines", "Qty", "Total Value"},
	}
	for _, group := range report.Groups {
		rows = append(rows, []interface{}{
			group.Key, group.Supplier, group.Status,
			group.LineCount, group.TotalQty, group.TotalValue.StringFixed(2),
		})
	}
	rows = append(rows, []interface{}{
		"TOTAL", "", "", report.LineCount, report.TotalQty, report.TotalValue.StringFixed(2),
	})
	if err := writeSheetRows(f, sheet, rows); err != nil {
		utils.LogError(err, "ExportClosingReport: Failed to write spreadsheet rows")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build spreadsheet.", "Internal error"))
		return
	}

	h.sendWorkbook(c, f, fmt.Sprintf("fechamento_%s.xlsx", time.Now().Format("20060102")))
}

// GetABCClassification returns the ABC ranking of the current stock.
func (h *ReportHandler) GetABCClassification(c *gin.Context) {
	entries, err := h.abcService.Classify()
	if err != nil {
		h.respondReportError(c, err, "GetABCClassification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// ExportABCClassification renders the ABC ranking as an XLSX download.
func (h *ReportHandler) ExportABCClassification(c *gin.Context) {
	entries, err := h.abcService.Classify()
	if err != nil {
		h.respondReportError(c, err, "ExportABCClassification")
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	rows := [][]interface{}{
		{"Product", "Qty", "Unit Price", "Stock Value", "Cumulative %", "Class"},
	}
	for _, entry := range entries {
		rows = append(rows, []interface{}{
			entry.Name, entry.CurrentQty, entry.UnitPrice.StringFixed(2),
			entry.StockValue.StringFixed(2), entry.CumulativePercent.StringFixed(1), entry.Class,
		})
	}
	if err := writeSheetRows(f, sheet, rows); err != nil {
		utils.LogError(err, "ExportABCClassification: Failed to write spreadsheet rows")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build spreadsheet.", "Internal error"))
		return
	}

	h.sendWorkbook(c, f, fmt.Sprintf("curva_abc_%s.xlsx", time.Now().Format("20060102")))
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (h *ReportHandler) sendWorkbook(c *gin.Context, f *excelize.File, filename string) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		utils.LogError(err, "sendWorkbook: Failed to serialize spreadsheet")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build spreadsheet.", "Internal error"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ReportHandler) respondReportError(c *gin.Context, err error, op string) {
	if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report request.", err.Error()))
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Report references missing data.", err.Error()))
		return
	}
	utils.LogError(err, op+": Error building report")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build report.", "Internal error"))
}
