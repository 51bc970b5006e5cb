package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"tiproom_backend/internal/models"
)

// WineRepository reads the commission-eligible wine list.
type WineRepository interface {
	GetWines() ([]models.Wine, error)
	GetWineByProductID(productID int64) (*models.Wine, error)
}

type wineRepository struct {
	db *sql.DB
}

// NewWineRepository creates a new instance of WineRepository.
func NewWineRepository(db *sql.DB) WineRepository {
	return &wineRepository{db: db}
}

func (r *wineRepository) GetWines() ([]models.Wine, error) {
	query := `SELECT name, base_price, display_price, product_id FROM wines ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying wines: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	wines := []models.Wine{}
	for rows.Next() {
		var wine models.Wine
		var displayPrice sql.NullString
		if err := rows.Scan(&wine.Name, &wine.BasePrice, &displayPrice, &wine.ProductID); err != nil {
			return nil, fmt.Errorf("%w: scanning wine: %v", ErrDatabaseError, err)
		}
		if displayPrice.Valid {
			wine.DisplayPrice = &displayPrice.String
		}
		wines = append(wines, wine)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating wine rows: %v", ErrDatabaseError, err)
	}
	return wines, nil
}

func (r *wineRepository) GetWineByProductID(productID int64) (*models.Wine, error) {
	query := `SELECT name, base_price, display_price, product_id FROM wines WHERE product_id = $1`
	var wine models.Wine
	var displayPrice sql.NullString
	err := r.db.QueryRow(query, productID).Scan(&wine.Name, &wine.BasePrice, &displayPrice, &wine.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting wine product %d: %v", ErrDatabaseError, productID, err)
	}
	if displayPrice.Valid {
		wine.DisplayPrice = &displayPrice.String
	}
	return &wine, nil
}
