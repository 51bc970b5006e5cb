package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tiproom_backend/internal/services"
	"tiproom_backend/pkg/utils"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// RegisterStaffMember handles registering a staff member, or refreshing an
// existing eid's name and card id.
func (h *StaffHandler) RegisterStaffMember(c *gin.Context) {
	var req services.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.staffService.RegisterStaffMember(req)
	if err != nil {
		utils.LogError(err, "RegisterStaffMember: Error from staffService.RegisterStaffMember")
		switch {
		case errors.Is(err, services.ErrStaffValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		case errors.Is(err, services.ErrDuplicateCardID):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Card id is already assigned to another staff member.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetStaffMembers returns the full roster.
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	members, err := h.staffService.GetStaffMembers()
	if err != nil {
		utils.LogError(err, "GetStaffMembers: Error from staffService.GetStaffMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve staff members.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetStaffNames returns the name/eid pairs used to populate pickers.
func (h *StaffHandler) GetStaffNames(c *gin.Context) {
	names, err := h.staffService.GetStaffNames()
	if err != nil {
		utils.LogError(err, "GetStaffNames: Error from staffService.GetStaffNames")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve staff names.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, names)
}

// GetMemberDetail returns one member's identity plus their nightly tip history.
func (h *StaffHandler) GetMemberDetail(c *gin.Context) {
	eid, err := utils.StrToInt64(c.Param("eid"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid eid format.", err.Error()))
		return
	}

	detail, err := h.staffService.GetMemberDetail(eid)
	if err != nil {
		utils.LogError(err, "GetMemberDetail: Error from staffService.GetMemberDetail")
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve staff member.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ImportStaffMembers bulk-loads the roster from an uploaded CSV file.
func (h *StaffHandler) ImportStaffMembers(c *gin.Context) {
	fileHeader, err := c.FormFile("staffFile")
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Staff import file is required.", err.Error()))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Could not open staff import upload.", err.Error()))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Could not read staff import upload.", err.Error()))
		return
	}

	imported, err := h.staffService.ImportStaffMembers(data)
	if err != nil {
		utils.LogError(err, "ImportStaffMembers: Error from staffService.ImportStaffMembers")
		switch {
		case errors.Is(err, services.ErrImportFormat), errors.Is(err, services.ErrStaffValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Staff import rejected: "+err.Error(), err.Error()))
		case errors.Is(err, services.ErrDuplicateCardID):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Staff import rejected: "+err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to import staff members.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}
