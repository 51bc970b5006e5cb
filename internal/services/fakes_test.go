package services

import (
	"fmt"
	"sort"

	"tiproom_backend/internal/models"
	"tiproom_backend/internal/repositories"
)

// fakeStaffRepo is an in-memory StaffRepository. The executor arguments are
// ignored; transactional behavior is covered by the real repository against a
// database, not here.
type fakeStaffRepo struct {
	members   map[int64]models.StaffMember
	nights    map[string][]models.Tip
	recordErr error
}

func newFakeStaffRepo(members ...models.StaffMember) *fakeStaffRepo {
	repo := &fakeStaffRepo{
		members: map[int64]models.StaffMember{},
		nights:  map[string][]models.Tip{},
	}
	for _, m := range members {
		repo.members[m.EID] = m
	}
	return repo
}

func (r *fakeStaffRepo) UpsertStaffMember(_ repositories.SQLExecutor, member *models.StaffMember) (*models.StaffMember, error) {
	for eid, existing := range r.members {
		if existing.CardID == member.CardID && eid != member.EID {
			return nil, fmt.Errorf("%w: card_id %q", repositories.ErrDuplicateKey, member.CardID)
		}
	}
	r.members[member.EID] = *member
	return member, nil
}

func (r *fakeStaffRepo) GetStaffMemberByEID(eid int64) (*models.StaffMember, error) {
	member, ok := r.members[eid]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &member, nil
}

func (r *fakeStaffRepo) GetStaffMembers() ([]models.StaffMember, error) {
	members := make([]models.StaffMember, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func (r *fakeStaffRepo) GetStaffNames() ([]models.StaffNameEID, error) {
	members, _ := r.GetStaffMembers()
	names := make([]models.StaffNameEID, 0, len(members))
	for _, m := range members {
		names = append(names, models.StaffNameEID{Name: m.Name, EID: m.EID})
	}
	return names, nil
}

func (r *fakeStaffRepo) RecordNight(_ repositories.SQLExecutor, date models.Date, tips []models.Tip) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.nights[date.String()] = tips
	return nil
}

func (r *fakeStaffRepo) GetTipsByDateRange(start, end models.Date) ([]models.TippedDay, error) {
	var days []models.TippedDay
	for dateStr, tips := range r.nights {
		date, _ := models.ParseDate(dateStr)
		if date.Before(start.Time) || date.After(end.Time) {
			continue
		}
		for _, tip := range tips {
			days = append(days, tippedDayFromTip(tip, date))
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Name < days[j].Name })
	return days, nil
}

func (r *fakeStaffRepo) GetTipsByEID(eid int64) ([]models.TippedDay, error) {
	var days []models.TippedDay
	for dateStr, tips := range r.nights {
		date, _ := models.ParseDate(dateStr)
		for _, tip := range tips {
			if tip.EID == eid {
				days = append(days, tippedDayFromTip(tip, date))
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date.Time) })
	return days, nil
}

func (r *fakeStaffRepo) GetTipSummaries(eid int64) ([]models.TipSummary, error) {
	days, _ := r.GetTipsByEID(eid)
	summaries := make([]models.TipSummary, 0, len(days))
	for _, day := range days {
		summaries = append(summaries, models.TipSummary{Date: day.Date, NetTips: day.NetTips})
	}
	return summaries, nil
}

func (r *fakeStaffRepo) GetTipStats(eid int64) (*models.TipStats, error) {
	days, _ := r.GetTipsByEID(eid)
	stats := models.TipStats{EID: eid}
	dates := map[string]bool{}
	for _, day := range days {
		dates[day.Date.String()] = true
		stats.NetTipsTotal = stats.NetTipsTotal.Add(day.NetTips)
		stats.TotalPay = stats.TotalPay.Add(day.TotalPayForNight)
		stats.TotalHours += day.Duration
	}
	stats.Nights = len(dates)
	if stats.TotalHours > 0 {
		stats.AverageHourlyPay = models.Money(float64(stats.NetTipsTotal) / stats.TotalHours)
	}
	return &stats, nil
}

func tippedDayFromTip(tip models.Tip, date models.Date) models.TippedDay {
	return models.TippedDay{
		Name:               tip.Employee,
		Role:               tip.Role,
		NetTips:            tip.NetTips,
		TotalPayForNight:   tip.TotalPayForNight,
		HourlyPayForNight:  tip.HourlyPayForNight,
		TippedHourForNight: tip.TippedHourForNight,
		Duration:           tip.Duration,
		EID:                tip.EID,
		Date:               date,
	}
}

// fakeRecorder persists nights straight into the fake repo so calculation
// tests can observe what was written.
type fakeRecorder struct {
	repo *fakeStaffRepo
}

func (f *fakeRecorder) RecordNight(date models.Date, tips []models.Tip) error {
	return f.repo.RecordNight(nil, date, tips)
}

// fakeWineRepo is an in-memory WineRepository.
type fakeWineRepo struct {
	wines map[int64]models.Wine
}

func newFakeWineRepo(wines ...models.Wine) *fakeWineRepo {
	repo := &fakeWineRepo{wines: map[int64]models.Wine{}}
	for _, w := range wines {
		repo.wines[w.ProductID] = w
	}
	return repo
}

func (r *fakeWineRepo) GetWines() ([]models.Wine, error) {
	wines := make([]models.Wine, 0, len(r.wines))
	for _, w := range r.wines {
		wines = append(wines, w)
	}
	sort.Slice(wines, func(i, j int) bool { return wines[i].Name < wines[j].Name })
	return wines, nil
}

func (r *fakeWineRepo) GetWineByProductID(productID int64) (*models.Wine, error) {
	wine, ok := r.wines[productID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &wine, nil
}

// fakeCommissionRepo is an in-memory CommissionRepository.
type fakeCommissionRepo struct {
	records []models.CommissionRecord
	views   []models.Commission
}

func (r *fakeCommissionRepo) CreateCommission(_ repositories.SQLExecutor, record *models.CommissionRecord) (*models.CommissionRecord, error) {
	for _, existing := range r.records {
		if existing.EID == record.EID && existing.ProductID == record.ProductID && existing.Date.String() == record.Date.String() {
			return nil, repositories.ErrDuplicateKey
		}
	}
	record.ID = int64(len(r.records) + 1)
	r.records = append(r.records, *record)
	return record, nil
}

func (r *fakeCommissionRepo) GetCommissions() ([]models.Commission, error) {
	return r.views, nil
}
