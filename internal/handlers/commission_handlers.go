package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiproom_backend/internal/services"
	"tiproom_backend/pkg/utils"
)

// CommissionHandler holds the commission service.
type CommissionHandler struct {
	commissionService services.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler.
func NewCommissionHandler(cs services.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: cs}
}

// RecordCommission handles appending one wine-sale commission.
func (h *CommissionHandler) RecordCommission(c *gin.Context) {
	var req services.RecordCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	commission, err := h.commissionService.RecordCommission(req)
	if err != nil {
		utils.LogError(err, "RecordCommission: Error from commissionService.RecordCommission")
		switch {
		case errors.Is(err, services.ErrCommissionValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		case errors.Is(err, services.ErrStaffNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		case errors.Is(err, services.ErrWineNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Wine product not found.", err.Error()))
		case errors.Is(err, services.ErrDuplicateCommission):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Commission already recorded for this staff member, product and date.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record commission.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, commission)
}

// GetCommissions returns every recorded commission, joined with staff and
// wine names.
func (h *CommissionHandler) GetCommissions(c *gin.Context) {
	commissions, err := h.commissionService.GetCommissions()
	if err != nil {
		utils.LogError(err, "GetCommissions: Error from commissionService.GetCommissions")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve commissions.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, commissions)
}
