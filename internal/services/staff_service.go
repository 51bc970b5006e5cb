package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tiproom_backend/internal/models"
	"tiproom_backend/internal/repositories"
)

// --- Custom Service Errors for Staff ---
var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrDuplicateCardID   = errors.New("card id is already assigned to another staff member")
	ErrStaffValidation   = errors.New("staff data validation error")
	ErrDateFormat        = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrDateRangeInverted = errors.New("end date must not precede start date")
	ErrImportFormat      = errors.New("staff import file could not be parsed")
)

// --- StaffMember DTOs ---
type RegisterStaffRequest struct {
	Name   string `json:"name" binding:"required"`
	CardID string `json:"card_id" binding:"required"`
	EID    int64  `json:"eid" binding:"required"`
}

// --- StaffService Interface ---
type StaffService interface {
	// Staff identity
	RegisterStaffMember(req RegisterStaffRequest) (*models.StaffMember, error)
	GetStaffMembers() ([]models.StaffMember, error)
	GetStaffNames() ([]models.StaffNameEID, error)
	GetMemberDetail(eid int64) (*models.MemberDetailResponse, error)
	ImportStaffMembers(data []byte) (int, error)

	// Ledger queries
	GetTipsByDateRange(startDate, endDate string) ([]models.TippedDay, error)
	GetTipsByEID(eid int64) ([]models.TippedDay, error)
	GetTipStats(eid int64) (*models.TipStats, error)
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(staffRepo repositories.StaffRepository, db *sql.DB) StaffService {
	return &staffService{staffRepo: staffRepo, db: db}
}

// RegisterStaffMember registers a new staff member or refreshes an existing
// eid's name and card. Card id collisions against a different eid are
// rejected; reassigning a returned card to a new member requires the old
// member's record to be updated first.
func (s *staffService) RegisterStaffMember(req RegisterStaffRequest) (*models.StaffMember, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrStaffValidation)
	}
	if strings.TrimSpace(req.CardID) == "" {
		return nil, fmt.Errorf("%w: card_id cannot be empty", ErrStaffValidation)
	}
	if req.EID <= 0 {
		return nil, fmt.Errorf("%w: eid must be positive", ErrStaffValidation)
	}

	member := &models.StaffMember{
		Name:   strings.TrimSpace(req.Name),
		CardID: strings.TrimSpace(req.CardID),
		EID:    req.EID,
	}
	created, err := s.staffRepo.UpsertStaffMember(s.db, member)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCardID, member.CardID)
		}
		return nil, fmt.Errorf("failed to upsert staff member: %w", err)
	}
	return created, nil
}

func (s *staffService) GetStaffMembers() ([]models.StaffMember, error) {
	members, err := s.staffRepo.GetStaffMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff members: %w", err)
	}
	return members, nil
}

func (s *staffService) GetStaffNames() ([]models.StaffNameEID, error) {
	names, err := s.staffRepo.GetStaffNames()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff names: %w", err)
	}
	return names, nil
}

// GetMemberDetail returns a member's identity plus their per-night tip
// history, newest night first.
func (s *staffService) GetMemberDetail(eid int64) (*models.MemberDetailResponse, error) {
	member, err := s.staffRepo.GetStaffMemberByEID(eid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	summaries, err := s.staffRepo.GetTipSummaries(eid)
	if err != nil {
		return nil, fmt.Errorf("failed to get tip summaries: %w", err)
	}
	return &models.MemberDetailResponse{
		StaffMember: models.MemberDetail{
			Name:   member.Name,
			EID:    member.EID,
			CardID: member.CardID,
		},
		Tips: summaries,
	}, nil
}

// ImportStaffMembers bulk-loads staff from an uploaded CSV with columns
// name, card_id, eid. Rows upsert by eid, so re-importing the same file is
// harmless. The whole file is validated row by row and rejected on the first
// bad row; financial identity data is not worth importing partially.
func (s *staffService) ImportStaffMembers(data []byte) (int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: missing header row", ErrImportFormat)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"name", "card_id", "eid"} {
		if _, ok := cols[required]; !ok {
			return 0, fmt.Errorf("%w: missing column %q", ErrImportFormat, required)
		}
	}

	var requests []RegisterStaffRequest
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: row %d: %v", ErrImportFormat, rowNum, err)
		}
		for _, required := range []string{"name", "card_id", "eid"} {
			if cols[required] >= len(row) {
				return 0, fmt.Errorf("%w: row %d: missing %q field", ErrImportFormat, rowNum, required)
			}
		}
		eid, err := strconv.ParseInt(strings.TrimSpace(row[cols["eid"]]), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: row %d: eid %q is not numeric", ErrImportFormat, rowNum, row[cols["eid"]])
		}
		requests = append(requests, RegisterStaffRequest{
			Name:   row[cols["name"]],
			CardID: row[cols["card_id"]],
			EID:    eid,
		})
	}

	for i, req := range requests {
		if _, err := s.RegisterStaffMember(req); err != nil {
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return len(requests), nil
}

func (s *staffService) GetTipsByDateRange(startDate, endDate string) ([]models.TippedDay, error) {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date: %v", ErrDateFormat, err)
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date: %v", ErrDateFormat, err)
	}
	if end.Before(start.Time) {
		return nil, fmt.Errorf("%w: %s .. %s", ErrDateRangeInverted, start, end)
	}

	days, err := s.staffRepo.GetTipsByDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get tips by date range: %w", err)
	}
	return days, nil
}

func (s *staffService) GetTipsByEID(eid int64) ([]models.TippedDay, error) {
	if _, err := s.staffRepo.GetStaffMemberByEID(eid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to validate staff member: %w", err)
	}
	days, err := s.staffRepo.GetTipsByEID(eid)
	if err != nil {
		return nil, fmt.Errorf("failed to get tips for eid %d: %w", eid, err)
	}
	return days, nil
}

func (s *staffService) GetTipStats(eid int64) (*models.TipStats, error) {
	if _, err := s.staffRepo.GetStaffMemberByEID(eid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to validate staff member: %w", err)
	}
	stats, err := s.staffRepo.GetTipStats(eid)
	if err != nil {
		return nil, fmt.Errorf("failed to compute tip stats for eid %d: %w", eid, err)
	}
	return stats, nil
}
