package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"tiproom_backend/internal/models"
	"tiproom_backend/internal/payroll"
	"tiproom_backend/internal/repositories"
)

// --- Custom Service Errors for Calculations ---
var (
	ErrCalculationValidation = errors.New("calculation input validation error")
	ErrNegativePool          = errors.New("pooled tip total cannot be negative")
	ErrMalformedReport       = errors.New("labor report could not be parsed")
	ErrUnknownEmployee       = errors.New("labor report references staff not in the ledger")
	ErrEmptyReport           = errors.New("labor report contains no usable rows")
	ErrArtifactGeneration    = errors.New("failed to generate download artifacts")
)

// CalculationRequest carries one night's submission: the aggregate figures as
// the decimal strings the form posted, plus the raw labor report upload.
type CalculationRequest struct {
	Date       string
	TotalSales string
	GotabTips  string
	CashTips   string
	ReportName string
	Report     []byte
}

// NightRecorder persists one night's allocation atomically. Split from
// StaffRepository so the engine can be exercised without a database.
type NightRecorder interface {
	RecordNight(date models.Date, tips []models.Tip) error
}

// CalculationService runs the tip pool engine for one night's submission.
type CalculationService interface {
	RunCalculation(req CalculationRequest) (*models.CalculationsResponse, error)
}

type calculationService struct {
	staffRepo repositories.StaffRepository
	recorder  NightRecorder
	artifacts *ArtifactWriter
	policy    payroll.PoolPolicy
	parserCfg payroll.ParserConfig

	// Same-date submissions overwrite each other, so they must serialize.
	// Different dates share no state and proceed independently.
	mu        sync.Mutex
	dateLocks map[string]*sync.Mutex
}

// NewCalculationService creates a new instance of CalculationService.
func NewCalculationService(
	staffRepo repositories.StaffRepository,
	recorder NightRecorder,
	artifacts *ArtifactWriter,
	policy payroll.PoolPolicy,
	parserCfg payroll.ParserConfig,
) CalculationService {
	return &calculationService{
		staffRepo: staffRepo,
		recorder:  recorder,
		artifacts: artifacts,
		policy:    policy,
		parserCfg: parserCfg,
		dateLocks: make(map[string]*sync.Mutex),
	}
}

// RunCalculation validates the submission, parses the labor report against
// the staff roster, allocates the pool, and persists the night — in that
// order, so any failure before persistence leaves the ledger untouched.
func (s *calculationService) RunCalculation(req CalculationRequest) (*models.CalculationsResponse, error) {
	inputs, err := s.parseInputs(req)
	if err != nil {
		return nil, err
	}
	if inputs.Pool().IsNegative() {
		return nil, fmt.Errorf("%w: gotab %s + cash %s", ErrNegativePool, inputs.GotabTips, inputs.CashTips)
	}

	lock := s.dateLock(inputs.Date.String())
	lock.Lock()
	defer lock.Unlock()

	members, err := s.staffRepo.GetStaffMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to load staff roster: %w", err)
	}
	roster := make(payroll.Roster, len(members))
	for _, m := range members {
		roster[m.EID] = m
	}

	records, err := payroll.ParseReport(req.Report, roster, s.parserCfg)
	if err != nil {
		return nil, translateParseError(err)
	}

	tips, err := payroll.Allocate(inputs.Pool(), inputs.TotalSales, records, s.policy)
	if err != nil {
		if errors.Is(err, payroll.ErrNegativePool) {
			return nil, fmt.Errorf("%w: %v", ErrNegativePool, err)
		}
		return nil, fmt.Errorf("allocation failed: %w", err)
	}
	summary := payroll.BuildSummary(tips)

	cards := make(map[int64]string, len(members))
	for _, m := range members {
		cards[m.EID] = m.CardID
	}
	calcLink, templateLink, err := s.artifacts.WriteNight(inputs.Date, tips, cards)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactGeneration, err)
	}

	// All computation succeeded; only now touch the ledger.
	if err := s.recorder.RecordNight(inputs.Date, tips); err != nil {
		return nil, fmt.Errorf("failed to persist night %s: %w", inputs.Date, err)
	}

	return &models.CalculationsResponse{
		CalculationsLink: calcLink,
		TemplateLink:     templateLink,
		Summary:          summary,
		Tips:             tips,
	}, nil
}

func (s *calculationService) parseInputs(req CalculationRequest) (models.NightInputs, error) {
	var inputs models.NightInputs
	var err error

	if inputs.Date, err = models.ParseDate(req.Date); err != nil {
		return inputs, fmt.Errorf("%w: date: %v", ErrCalculationValidation, err)
	}
	if inputs.TotalSales, err = models.ParseMoney(req.TotalSales); err != nil {
		return inputs, fmt.Errorf("%w: total_sales: %v", ErrCalculationValidation, err)
	}
	if inputs.GotabTips, err = models.ParseMoney(req.GotabTips); err != nil {
		return inputs, fmt.Errorf("%w: gotab_tips: %v", ErrCalculationValidation, err)
	}
	if inputs.CashTips, err = models.ParseMoney(req.CashTips); err != nil {
		return inputs, fmt.Errorf("%w: cash_tips: %v", ErrCalculationValidation, err)
	}
	if inputs.TotalSales.IsNegative() {
		return inputs, fmt.Errorf("%w: total_sales cannot be negative", ErrCalculationValidation)
	}
	if len(req.Report) == 0 {
		return inputs, fmt.Errorf("%w: labor_report is required", ErrCalculationValidation)
	}
	return inputs, nil
}

func (s *calculationService) dateLock(date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.dateLocks[date]
	if !ok {
		lock = &sync.Mutex{}
		s.dateLocks[date] = lock
	}
	return lock
}

func translateParseError(err error) error {
	switch {
	case errors.Is(err, payroll.ErrUnknownEmployee):
		return fmt.Errorf("%w: %v", ErrUnknownEmployee, err)
	case errors.Is(err, payroll.ErrEmptyReport):
		return fmt.Errorf("%w: %v", ErrEmptyReport, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
}

// txNightRecorder is the production NightRecorder: it wraps RecordNight in a
// transaction so either every TippedDay row for the date is written or none.
type txNightRecorder struct {
	db        *sql.DB
	staffRepo repositories.StaffRepository
}

// NewTxNightRecorder creates a NightRecorder backed by the staff ledger.
func NewTxNightRecorder(db *sql.DB, staffRepo repositories.StaffRepository) NightRecorder {
	return &txNightRecorder{db: db, staffRepo: staffRepo}
}

func (r *txNightRecorder) RecordNight(date models.Date, tips []models.Tip) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", repositories.ErrDatabaseError, err)
	}
	if err := r.staffRepo.RecordNight(tx, date, tips); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing night %s: %v", repositories.ErrDatabaseError, date, err)
	}
	return nil
}
