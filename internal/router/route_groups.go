package router

import (
	"tiproom_backend/internal/handlers"
	"tiproom_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes. Register and login are
// public; the profile route requires a valid token.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.Me)
		}
	}
}

// SetupCalculationRoutes sets up the nightly calculation route.
func SetupCalculationRoutes(authenticatedGroup *gin.RouterGroup, calculationHandler *handlers.CalculationHandler) {
	authenticatedGroup.POST("/calculations", calculationHandler.RunCalculation)
}

// SetupTipRoutes sets up the tip ledger routes.
func SetupTipRoutes(authenticatedGroup *gin.RouterGroup, tipHandler *handlers.TipHandler) {
	tipRoutes := authenticatedGroup.Group("/tips")
	{
		tipRoutes.POST("", tipHandler.GetTipsByDateRange)
		tipRoutes.GET("/export", tipHandler.ExportTips)
		tipRoutes.GET("/:eid", tipHandler.GetTipsByEID)
		tipRoutes.GET("/:eid/summary", tipHandler.GetTipStats)
	}
}

// SetupStaffRoutes sets up the staff roster routes.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	{
		staffRoutes.POST("", staffHandler.RegisterStaffMember)
		staffRoutes.GET("", staffHandler.GetStaffMembers)
		staffRoutes.GET("/names", staffHandler.GetStaffNames)
		staffRoutes.GET("/:eid", staffHandler.GetMemberDetail)
		staffRoutes.POST("/import", staffHandler.ImportStaffMembers)
	}
}

// SetupWineRoutes sets up the wine list routes.
func SetupWineRoutes(authenticatedGroup *gin.RouterGroup, wineHandler *handlers.WineHandler) {
	authenticatedGroup.GET("/wines", wineHandler.GetWines)
}

// SetupCommissionRoutes sets up the commission routes.
func SetupCommissionRoutes(authenticatedGroup *gin.RouterGroup, commissionHandler *handlers.CommissionHandler) {
	commissionRoutes := authenticatedGroup.Group("/commissions")
	{
		commissionRoutes.POST("", commissionHandler.RecordCommission)
		commissionRoutes.GET("", commissionHandler.GetCommissions)
	}
}
