package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tiproom_backend/internal/services"
	"tiproom_backend/pkg/utils"
)

// WineHandler holds the wine service.
type WineHandler struct {
	wineService services.WineService
}

// NewWineHandler creates a new WineHandler.
func NewWineHandler(ws services.WineService) *WineHandler {
	return &WineHandler{wineService: ws}
}

// GetWines returns the commissionable wine list.
func (h *WineHandler) GetWines(c *gin.Context) {
	wines, err := h.wineService.GetWines()
	if err != nil {
		utils.LogError(err, "GetWines: Error from wineService.GetWines")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve wines.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, wines)
}
