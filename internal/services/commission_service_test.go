package services

import (
	"errors"
	"testing"

	"tiproom_backend/internal/models"
)

func newTestCommissionService() (CommissionService, *fakeCommissionRepo) {
	staffRepo := newFakeStaffRepo(models.StaffMember{Name: "Alice Smith", CardID: "card-a", EID: 101})
	wineRepo := newFakeWineRepo(models.Wine{Name: "Chateau Margaux", BasePrice: 45000, ProductID: 7})
	commissionRepo := &fakeCommissionRepo{}
	return NewCommissionService(commissionRepo, wineRepo, staffRepo, nil), commissionRepo
}

func TestRecordCommission(t *testing.T) {
	service, repo := newTestCommissionService()

	commission, err := service.RecordCommission(RecordCommissionRequest{
		EID: 101, ProductID: 7, Amount: "25.00", Date: "2026-03-14",
	})
	if err != nil {
		t.Fatalf("RecordCommission: %v", err)
	}
	if commission.Name != "Alice Smith" || commission.Wine != "Chateau Margaux" {
		t.Errorf("view = %+v, want joined staff and wine names", commission)
	}
	if commission.Amount != 2500 {
		t.Errorf("amount = %s, want 25.00", commission.Amount)
	}
	if len(repo.records) != 1 {
		t.Fatalf("persisted %d records, want 1", len(repo.records))
	}
}

func TestRecordCommissionValidation(t *testing.T) {
	service, _ := newTestCommissionService()
	tests := []struct {
		name string
		req  RecordCommissionRequest
		want error
	}{
		{
			name: "bad amount",
			req:  RecordCommissionRequest{EID: 101, ProductID: 7, Amount: "lots", Date: "2026-03-14"},
			want: ErrCommissionValidation,
		},
		{
			name: "negative amount",
			req:  RecordCommissionRequest{EID: 101, ProductID: 7, Amount: "-1.00", Date: "2026-03-14"},
			want: ErrCommissionValidation,
		},
		{
			name: "bad date",
			req:  RecordCommissionRequest{EID: 101, ProductID: 7, Amount: "25.00", Date: "next friday"},
			want: ErrCommissionValidation,
		},
		{
			name: "unknown staff",
			req:  RecordCommissionRequest{EID: 999, ProductID: 7, Amount: "25.00", Date: "2026-03-14"},
			want: ErrStaffNotFound,
		},
		{
			name: "unknown wine",
			req:  RecordCommissionRequest{EID: 101, ProductID: 999, Amount: "25.00", Date: "2026-03-14"},
			want: ErrWineNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.RecordCommission(tt.req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRecordCommissionDuplicate(t *testing.T) {
	service, _ := newTestCommissionService()

	req := RecordCommissionRequest{EID: 101, ProductID: 7, Amount: "25.00", Date: "2026-03-14"}
	if _, err := service.RecordCommission(req); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if _, err := service.RecordCommission(req); !errors.Is(err, ErrDuplicateCommission) {
		t.Fatalf("err = %v, want ErrDuplicateCommission", err)
	}

	// A different date for the same member and product is a new commission.
	req.Date = "2026-03-15"
	if _, err := service.RecordCommission(req); err != nil {
		t.Errorf("different date: %v", err)
	}
}

func TestGetCommissions(t *testing.T) {
	service, repo := newTestCommissionService()
	repo.views = []models.Commission{
		{Name: "Alice Smith", Wine: "Chateau Margaux", Amount: 2500, ProductID: 7},
	}

	commissions, err := service.GetCommissions()
	if err != nil {
		t.Fatalf("GetCommissions: %v", err)
	}
	if len(commissions) != 1 || commissions[0].Amount != 2500 {
		t.Errorf("commissions = %+v", commissions)
	}
}
