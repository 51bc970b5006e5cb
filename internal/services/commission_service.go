package services

import (
	"database/sql"
	"errors"
	"fmt"

	"tiproom_backend/internal/models"
	"tiproom_backend/internal/repositories"
)

// --- Custom Service Errors for Commissions ---
var (
	ErrCommissionValidation = errors.New("commission data validation error")
	ErrWineNotFound         = errors.New("wine product not found")
	ErrDuplicateCommission  = errors.New("commission already recorded for this staff member, product and date")
)

// --- Commission DTOs ---
type RecordCommissionRequest struct {
	EID       int64  `json:"eid" binding:"required"`
	ProductID int64  `json:"product_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

// --- CommissionService Interface ---
type CommissionService interface {
	RecordCommission(req RecordCommissionRequest) (*models.Commission, error)
	GetCommissions() ([]models.Commission, error)
}

// --- commissionService Implementation ---
type commissionService struct {
	commissionRepo repositories.CommissionRepository
	wineRepo       repositories.WineRepository
	staffRepo      repositories.StaffRepository
	db             *sql.DB
}

// NewCommissionService creates a new instance of CommissionService.
func NewCommissionService(
	commissionRepo repositories.CommissionRepository,
	wineRepo repositories.WineRepository,
	staffRepo repositories.StaffRepository,
	db *sql.DB,
) CommissionService {
	return &commissionService{
		commissionRepo: commissionRepo,
		wineRepo:       wineRepo,
		staffRepo:      staffRepo,
		db:             db,
	}
}

// RecordCommission appends one wine-sale commission. Both the staff member
// and the product must already exist; commissions share staff identity with
// the tip ledger but are never recomputed from tip data.
func (s *commissionService) RecordCommission(req RecordCommissionRequest) (*models.Commission, error) {
	amount, err := models.ParseMoney(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %v", ErrCommissionValidation, err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrCommissionValidation)
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrCommissionValidation, err)
	}

	member, err := s.staffRepo.GetStaffMemberByEID(req.EID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: eid %d", ErrStaffNotFound, req.EID)
		}
		return nil, fmt.Errorf("failed to validate staff member for commission: %w", err)
	}
	wine, err := s.wineRepo.GetWineByProductID(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: product_id %d", ErrWineNotFound, req.ProductID)
		}
		return nil, fmt.Errorf("failed to validate wine for commission: %w", err)
	}

	record := &models.CommissionRecord{
		EID:       req.EID,
		ProductID: req.ProductID,
		Amount:    amount,
		Date:      date,
	}
	if _, err := s.commissionRepo.CreateCommission(s.db, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: eid %d, product %d, %s", ErrDuplicateCommission, req.EID, req.ProductID, date)
		}
		return nil, fmt.Errorf("failed to record commission: %w", err)
	}

	return &models.Commission{
		Name:      member.Name,
		Wine:      wine.Name,
		Amount:    amount,
		ProductID: req.ProductID,
		Date:      date,
	}, nil
}

func (s *commissionService) GetCommissions() ([]models.Commission, error) {
	commissions, err := s.commissionRepo.GetCommissions()
	if err != nil {
		return nil, fmt.Errorf("failed to get commissions: %w", err)
	}
	return commissions, nil
}
