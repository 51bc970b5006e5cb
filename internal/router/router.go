package router

import (
	"database/sql"

	"tiproom_backend/internal/handlers"
	"tiproom_backend/internal/middleware"
	"tiproom_backend/internal/payroll"
	"tiproom_backend/internal/repositories"
	"tiproom_backend/internal/services"
	"tiproom_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers, and registers every route.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	staffRepo := repositories.NewStaffRepository(db)
	wineRepo := repositories.NewWineRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	authRepo := repositories.NewAuthRepository(db)

	// Generated artifacts land on disk and are served back under a static
	// prefix, so the response links resolve against this same server.
	downloadsDir := utils.Getenv("DOWNLOADS_DIR", "./downloads")
	downloadsBase := utils.Getenv("DOWNLOADS_PUBLIC_BASE", "/downloads")
	artifacts := &services.ArtifactWriter{
		Dir:             downloadsDir,
		PublicBase:      downloadsBase,
		FundingCardID:   utils.Getenv("FUNDING_CARD_ID", ""),
		FundingPasscode: utils.Getenv("FUNDING_CARD_PASSCODE", ""),
	}
	engine.Static(downloadsBase, downloadsDir)

	// Initialize Services
	staffService := services.NewStaffService(staffRepo, db)
	calculationService := services.NewCalculationService(
		staffRepo,
		services.NewTxNightRecorder(db, staffRepo),
		artifacts,
		payroll.HousePolicy(),
		payroll.DefaultParserConfig(),
	)
	wineService := services.NewWineService(wineRepo)
	commissionService := services.NewCommissionService(commissionRepo, wineRepo, staffRepo, db)
	authService := services.NewAuthService(authRepo, db)

	// Initialize Handlers
	calculationHandler := handlers.NewCalculationHandler(calculationService)
	tipHandler := handlers.NewTipHandler(staffService)
	staffHandler := handlers.NewStaffHandler(staffService)
	wineHandler := handlers.NewWineHandler(wineService)
	commissionHandler := handlers.NewCommissionHandler(commissionService)
	authHandler := handlers.NewAuthHandler(authService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupCalculationRoutes(authenticated, calculationHandler)
		SetupTipRoutes(authenticated, tipHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupWineRoutes(authenticated, wineHandler)
		SetupCommissionRoutes(authenticated, commissionHandler)
	}
}
