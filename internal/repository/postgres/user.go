package postgres

import (
	"database/sql"
	"errors"
)

const (
	queryIsAuthorized = `SELECT authorized FROM users WHERE user_id = $1`

	queryAuthorizeUser = `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`

	queryEnsureUser = `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if user has entered the bot password; unknown users are not
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	err := r.db.QueryRow(queryIsAuthorized, userID).Scan(&authorized)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return authorized, nil
}

// AuthorizeUser marks user as authorized, creating the row when needed
func (r *UserRepo) AuthorizeUser(userID int64) error {
	_, err := r.db.Exec(queryAuthorizeUser, userID)
	return err
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	_, err := r.db.Exec(queryEnsureUser, userID)
	return err
}
