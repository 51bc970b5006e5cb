package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiproom_backend/internal/services"
	"tiproom_backend/pkg/utils"
)

// TipHandler serves the nightly tip ledger.
type TipHandler struct {
	staffService services.StaffService
}

// NewTipHandler creates a new TipHandler.
func NewTipHandler(ss services.StaffService) *TipHandler {
	return &TipHandler{staffService: ss}
}

// GetTipsByDateRange returns every ledger row inside the inclusive
// [startDate, endDate] window, submitted as form fields.
func (h *TipHandler) GetTipsByDateRange(c *gin.Context) {
	startDate := c.PostForm("startDate")
	endDate := c.PostForm("endDate")
	if utils.IsEmpty(startDate) || utils.IsEmpty(endDate) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Both startDate and endDate are required.", "missing form field"))
		return
	}

	days, err := h.staffService.GetTipsByDateRange(startDate, endDate)
	if err != nil {
		utils.LogError(err, "GetTipsByDateRange: Error from staffService.GetTipsByDateRange")
		switch {
		case errors.Is(err, services.ErrDateFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Dates must use the YYYY-MM-DD format.", err.Error()))
		case errors.Is(err, services.ErrDateRangeInverted):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "End date must not precede start date.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve tips.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, days)
}

// GetTipsByEID returns every recorded night for one staff member.
func (h *TipHandler) GetTipsByEID(c *gin.Context) {
	eid, err := utils.StrToInt64(c.Param("eid"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid eid format.", err.Error()))
		return
	}

	days, err := h.staffService.GetTipsByEID(eid)
	if err != nil {
		utils.LogError(err, "GetTipsByEID: Error from staffService.GetTipsByEID")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve tips.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, days)
}

// GetTipStats returns the lifetime aggregates for one staff member.
func (h *TipHandler) GetTipStats(c *gin.Context) {
	eid, err := utils.StrToInt64(c.Param("eid"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid eid format.", err.Error()))
		return
	}

	stats, err := h.staffService.GetTipStats(eid)
	if err != nil {
		utils.LogError(err, "GetTipStats: Error from staffService.GetTipStats")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute tip stats.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportTips streams the ledger rows for a date range as a CSV download.
// The range comes in as start_date/end_date query parameters.
func (h *TipHandler) ExportTips(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if utils.IsEmpty(startDate) || utils.IsEmpty(endDate) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Both start_date and end_date query parameters are required.", "missing query parameter"))
		return
	}

	days, err := h.staffService.GetTipsByDateRange(startDate, endDate)
	if err != nil {
		utils.LogError(err, "ExportTips: Error from staffService.GetTipsByDateRange")
		switch {
		case errors.Is(err, services.ErrDateFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Dates must use the YYYY-MM-DD format.", err.Error()))
		case errors.Is(err, services.ErrDateRangeInverted):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "End date must not precede start date.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export tips.", "Internal error"))
		}
		return
	}

	filename := fmt.Sprintf("tips_%s_%s.csv", startDate, endDate)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write([]string{"Date", "EID", "Name", "Role", "Net Tips", "Total Pay For Night", "Hourly Pay For Night", "Duration (hrs)"})
	for _, day := range days {
		_ = writer.Write([]string{
			day.Date.String(),
			utils.Int64ToStr(day.EID),
			day.Name,
			day.Role,
			day.NetTips.String(),
			day.TotalPayForNight.String(),
			day.HourlyPayForNight.String(),
			fmt.Sprintf("%.2f", day.Duration),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		utils.LogError(err, "ExportTips: failed to flush CSV stream")
	}
}
