package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"tiproom_backend/internal/models"
)

// CommissionRepository is the append-only ledger of wine-sale commissions.
type CommissionRepository interface {
	CreateCommission(executor SQLExecutor, record *models.CommissionRecord) (*models.CommissionRecord, error)
	GetCommissions() ([]models.Commission, error)
}

type commissionRepository struct {
	db *sql.DB
}

// NewCommissionRepository creates a new instance of CommissionRepository.
func NewCommissionRepository(db *sql.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) CreateCommission(executor SQLExecutor, record *models.CommissionRecord) (*models.CommissionRecord, error) {
	query := `INSERT INTO commissions (eid, product_id, amount, date, created, modified)
	          VALUES ($1, $2, $3, $4, $5, $5)
	          RETURNING id, created, modified`

	err := executor.QueryRow(query,
		record.EID, record.ProductID, record.Amount, record.Date, time.Now(),
	).Scan(&record.ID, &record.Created, &record.Modified)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: commission already recorded for eid %d, product %d on %s",
					ErrDuplicateKey, record.EID, record.ProductID, record.Date)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, fmt.Errorf("%w: commission references unknown staff or product (constraint: %s)",
					ErrNotFound, pqErr.Constraint)
			}
		}
		return nil, fmt.Errorf("%w: creating commission: %v", ErrDatabaseError, err)
	}
	return record, nil
}

// GetCommissions returns every commission joined against staff and wine
// identity, ordered by staff name the way the commissions page lists them.
func (r *commissionRepository) GetCommissions() ([]models.Commission, error) {
	query := `SELECT sm.name, w.name, c.amount, c.product_id, c.date
	          FROM commissions c
	          JOIN staff_members sm ON c.eid = sm.eid
	          JOIN wines w ON c.product_id = w.product_id
	          ORDER BY sm.name ASC, c.date ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying commissions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	commissions := []models.Commission{}
	for rows.Next() {
		var c models.Commission
		if err := rows.Scan(&c.Name, &c.Wine, &c.Amount, &c.ProductID, &c.Date); err != nil {
			return nil, fmt.Errorf("%w: scanning commission: %v", ErrDatabaseError, err)
		}
		commissions = append(commissions, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating commission rows: %v", ErrDatabaseError, err)
	}
	return commissions, nil
}
