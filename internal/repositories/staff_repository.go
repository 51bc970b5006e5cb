package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // For pq.Error

	"tiproom_backend/internal/models"
)

// StaffRepository is the staff ledger: staff identity plus the historical
// TippedDay records it exclusively owns.
type StaffRepository interface {
	// Staff identity
	UpsertStaffMember(executor SQLExecutor, member *models.StaffMember) (*models.StaffMember, error)
	GetStaffMemberByEID(eid int64) (*models.StaffMember, error)
	GetStaffMembers() ([]models.StaffMember, error)
	GetStaffNames() ([]models.StaffNameEID, error)

	// Night history
	RecordNight(executor SQLExecutor, date models.Date, tips []models.Tip) error
	GetTipsByDateRange(start, end models.Date) ([]models.TippedDay, error)
	GetTipsByEID(eid int64) ([]models.TippedDay, error)
	GetTipSummaries(eid int64) ([]models.TipSummary, error)
	GetTipStats(eid int64) (*models.TipStats, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

// --- Staff identity ---

// UpsertStaffMember inserts a staff member or, when the eid already exists,
// refreshes name and card id. A card id held by a different eid surfaces as
// ErrDuplicateKey.
func (r *staffRepository) UpsertStaffMember(executor SQLExecutor, member *models.StaffMember) (*models.StaffMember, error) {
	query := `INSERT INTO staff_members (eid, name, card_id, created, modified)
	          VALUES ($1, $2, $3, $4, $4)
	          ON CONFLICT (eid) DO UPDATE SET name = EXCLUDED.name, card_id = EXCLUDED.card_id, modified = EXCLUDED.modified
	          RETURNING created, modified`

	err := executor.QueryRow(query, member.EID, member.Name, member.CardID, time.Now()).
		Scan(&member.Created, &member.Modified)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: card_id %q is already assigned to another staff member", ErrDuplicateKey, member.CardID)
		}
		return nil, fmt.Errorf("%w: upserting staff member eid %d: %v", ErrDatabaseError, member.EID, err)
	}
	return member, nil
}

func (r *staffRepository) GetStaffMemberByEID(eid int64) (*models.StaffMember, error) {
	query := `SELECT eid, name, card_id, created, modified FROM staff_members WHERE eid = $1`
	var member models.StaffMember
	err := r.db.QueryRow(query, eid).Scan(
		&member.EID, &member.Name, &member.CardID, &member.Created, &member.Modified,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff member eid %d: %v", ErrDatabaseError, eid, err)
	}
	return &member, nil
}

func (r *staffRepository) GetStaffMembers() ([]models.StaffMember, error) {
	query := `SELECT eid, name, card_id, created, modified FROM staff_members ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	members := []models.StaffMember{}
	for rows.Next() {
		var member models.StaffMember
		if err := rows.Scan(&member.EID, &member.Name, &member.CardID, &member.Created, &member.Modified); err != nil {
			return nil, fmt.Errorf("%w: scanning staff member: %v", ErrDatabaseError, err)
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff member rows: %v", ErrDatabaseError, err)
	}
	return members, nil
}

func (r *staffRepository) GetStaffNames() ([]models.StaffNameEID, error) {
	query := `SELECT name, eid FROM staff_members ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff names: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	names := []models.StaffNameEID{}
	for rows.Next() {
		var n models.StaffNameEID
		if err := rows.Scan(&n.Name, &n.EID); err != nil {
			return nil, fmt.Errorf("%w: scanning staff name: %v", ErrDatabaseError, err)
		}
		names = append(names, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff name rows: %v", ErrDatabaseError, err)
	}
	return names, nil
}

// --- Night history ---

// RecordNight persists one TippedDay per tip for the date. Idempotent per
// date: any prior rows for the date are removed first, so a corrected
// resubmission replaces the whole night instead of duplicating it. Callers
// pass a *sql.Tx so the delete and inserts commit or roll back together.
func (r *staffRepository) RecordNight(executor SQLExecutor, date models.Date, tips []models.Tip) error {
	if _, err := executor.Exec(`DELETE FROM tipped_days WHERE date = $1`, date); err != nil {
		return fmt.Errorf("%w: clearing tipped days for %s: %v", ErrDatabaseError, date, err)
	}

	query := `INSERT INTO tipped_days
	            (eid, name, role, net_tips, total_pay_for_night, hourly_pay_for_night,
	             tipped_hour_for_night, duration, date, created, modified)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	now := time.Now()
	for _, tip := range tips {
		_, err := executor.Exec(query,
			tip.EID, tip.Employee, tip.Role, tip.NetTips, tip.TotalPayForNight,
			tip.HourlyPayForNight, tip.TippedHourForNight, tip.Duration, date, now,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
				return fmt.Errorf("%w: tipped day references unregistered eid %d", ErrNotFound, tip.EID)
			}
			return fmt.Errorf("%w: inserting tipped day for eid %d on %s: %v", ErrDatabaseError, tip.EID, date, err)
		}
	}
	return nil
}

func scanTippedDay(rows *sql.Rows) (models.TippedDay, error) {
	var day models.TippedDay
	err := rows.Scan(
		&day.EID, &day.Name, &day.Role, &day.NetTips, &day.TotalPayForNight,
		&day.HourlyPayForNight, &day.TippedHourForNight, &day.Duration,
		&day.Date, &day.Created, &day.Modified,
	)
	return day, err
}

const tippedDayColumns = `eid, name, role, net_tips, total_pay_for_night, hourly_pay_for_night,
	tipped_hour_for_night, duration, date, created, modified`

func (r *staffRepository) GetTipsByDateRange(start, end models.Date) ([]models.TippedDay, error) {
	query := `SELECT ` + tippedDayColumns + `
	          FROM tipped_days WHERE date >= $1 AND date <= $2 ORDER BY name ASC, date ASC`
	return r.queryTippedDays(query, start, end)
}

func (r *staffRepository) GetTipsByEID(eid int64) ([]models.TippedDay, error) {
	query := `SELECT ` + tippedDayColumns + `
	          FROM tipped_days WHERE eid = $1 ORDER BY date ASC`
	return r.queryTippedDays(query, eid)
}

func (r *staffRepository) queryTippedDays(query string, args ...interface{}) ([]models.TippedDay, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tipped days: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	days := []models.TippedDay{}
	for rows.Next() {
		day, err := scanTippedDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning tipped day: %v", ErrDatabaseError, err)
		}
		days = append(days, day)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tipped day rows: %v", ErrDatabaseError, err)
	}
	return days, nil
}

func (r *staffRepository) GetTipSummaries(eid int64) ([]models.TipSummary, error) {
	query := `SELECT date, SUM(net_tips) FROM tipped_days WHERE eid = $1 GROUP BY date ORDER BY date DESC`
	rows, err := r.db.Query(query, eid)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tip summaries for eid %d: %v", ErrDatabaseError, eid, err)
	}
	defer rows.Close()

	summaries := []models.TipSummary{}
	for rows.Next() {
		var s models.TipSummary
		if err := rows.Scan(&s.Date, &s.NetTips); err != nil {
			return nil, fmt.Errorf("%w: scanning tip summary: %v", ErrDatabaseError, err)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tip summary rows: %v", ErrDatabaseError, err)
	}
	return summaries, nil
}

// GetTipStats is the read-only historical rollup for one employee. Computed
// from tipped_days on every call, never persisted.
func (r *staffRepository) GetTipStats(eid int64) (*models.TipStats, error) {
	query := `SELECT COUNT(DISTINCT date), COALESCE(SUM(net_tips), 0),
	                 COALESCE(SUM(total_pay_for_night), 0), COALESCE(SUM(duration), 0)
	          FROM tipped_days WHERE eid = $1`
	stats := models.TipStats{EID: eid}
	var totalHours float64
	err := r.db.QueryRow(query, eid).Scan(&stats.Nights, &stats.NetTipsTotal, &stats.TotalPay, &totalHours)
	if err != nil {
		return nil, fmt.Errorf("%w: computing tip stats for eid %d: %v", ErrDatabaseError, eid, err)
	}
	stats.TotalHours = totalHours
	if totalHours > 0 {
		stats.AverageHourlyPay = models.Money(float64(stats.NetTipsTotal) / totalHours)
	}
	return &stats, nil
}
