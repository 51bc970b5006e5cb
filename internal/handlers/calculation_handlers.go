package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiproom_backend/internal/services"
	"tiproom_backend/pkg/utils"
)

// CalculationHandler holds the calculation service.
type CalculationHandler struct {
	calculationService services.CalculationService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(cs services.CalculationService) *CalculationHandler {
	return &CalculationHandler{calculationService: cs}
}

// RunCalculation handles the nightly multipart submission: date, the three
// monetary totals, and the labor report upload. The whole night either
// computes and persists or is rejected; there is no partial outcome to
// report.
func (h *CalculationHandler) RunCalculation(c *gin.Context) {
	fileHeader, err := c.FormFile("laborReport")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Labor report file is required.", err.Error()))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Could not open labor report upload.", err.Error()))
		return
	}
	defer file.Close()
	report, err := io.ReadAll(file)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Could not read labor report upload.", err.Error()))
		return
	}

	utils.LogDebug("Labor report received", map[string]interface{}{
		"filename": fileHeader.Filename,
		"bytes":    len(report),
	})

	req := services.CalculationRequest{
		Date:       c.PostForm("date"),
		TotalSales: c.PostForm("totalSales"),
		GotabTips:  c.PostForm("gotabTips"),
		CashTips:   c.PostForm("cashTips"),
		ReportName: fileHeader.Filename,
		Report:     report,
	}

	response, err := h.calculationService.RunCalculation(req)
	if err != nil {
		utils.LogError(err, "RunCalculation: Error from calculationService.RunCalculation")
		switch {
		case errors.Is(err, services.ErrCalculationValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		case errors.Is(err, services.ErrNegativePool):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Pooled tip total cannot be negative.", err.Error()))
		case errors.Is(err, services.ErrUnknownEmployee):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Labor report references staff not registered in the ledger.", err.Error()))
		case errors.Is(err, services.ErrEmptyReport):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Labor report contains no usable rows.", err.Error()))
		case errors.Is(err, services.ErrMalformedReport):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Labor report could not be parsed.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to run calculation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, response)
}
