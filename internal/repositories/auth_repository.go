package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"tiproom_backend/internal/models"
)

// AuthRepository persists operator accounts for the back-office UI.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, full_name, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $4)
	          RETURNING id, created_at, updated_at`

	err := executor.QueryRow(query, user.Username, user.FullName, user.PasswordHash, time.Now()).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: username %q already exists", ErrDuplicateKey, user.Username)
		}
		return nil, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *authRepository) FindUserByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, full_name, password_hash, created_at, updated_at
	          FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRow(query, username))
}

func (r *authRepository) FindUserByID(id int64) (*models.User, error) {
	query := `SELECT id, username, full_name, password_hash, created_at, updated_at
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(query, id))
}

func (r *authRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var fullName sql.NullString
	err := row.Scan(&user.ID, &user.Username, &fullName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	return &user, nil
}
