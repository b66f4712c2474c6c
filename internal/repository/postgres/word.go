package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"linguabird/internal/domain"
)

// historyWindowDays limits the day list to recent history
const historyWindowDays = 60

// WordRepo implements repository.WordRepository.
// Day boundaries are computed in the configured time zone.
type WordRepo struct {
	db       *sql.DB
	timezone string
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB, timezone string) *WordRepo {
	if timezone == "" {
		timezone = "UTC"
	}
	return &WordRepo{db: db, timezone: timezone}
}

// SaveWords stores a rendered list in one transaction
func (r *WordRepo) SaveWords(userID int64, direction domain.Direction, pairs []domain.WordPair) error {
	if len(pairs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.Prepare(`
		INSERT INTO words (user_id, word, translation, direction)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pairs {
		if _, err := stmt.Exec(userID, p.Source, p.Target, string(direction)); err != nil {
			return fmt.Errorf("insert word %q: %w", p.Source, err)
		}
	}

	return tx.Commit()
}

// GetRandomWord returns a random word for the user, nil when there is none
func (r *WordRepo) GetRandomWord(userID int64) (*domain.Word, error) {
	query := `
		SELECT id, user_id, word, translation, direction, created_at
		FROM words
		WHERE user_id = $1
		ORDER BY RANDOM()
		LIMIT 1
	`
	w, err := scanWord(r.db.QueryRow(query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// GetDaysWithWords returns recent days that have words, newest first
func (r *WordRepo) GetDaysWithWords(userID int64, limit, offset int) ([]domain.Day, error) {
	query := `
		SELECT DATE(created_at AT TIME ZONE $2) AS day, COUNT(*) AS count
		FROM words
		WHERE user_id = $1
			AND created_at >= NOW() - INTERVAL '1 day' * $5
		GROUP BY 1
		ORDER BY day DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(query, userID, r.timezone, limit, offset, historyWindowDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.Date, &d.WordCount); err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetTotalDaysCount returns the number of recent days with words
func (r *WordRepo) GetTotalDaysCount(userID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT DATE(created_at AT TIME ZONE $2))
		FROM words
		WHERE user_id = $1
			AND created_at >= NOW() - INTERVAL '1 day' * $3
	`

	var count int
	err := r.db.QueryRow(query, userID, r.timezone, historyWindowDays).Scan(&count)
	return count, err
}

// GetWordsByDate returns the words rendered on a calendar day, in the order they were saved
func (r *WordRepo) GetWordsByDate(userID int64, date time.Time) ([]domain.Word, error) {
	query := `
		SELECT id, user_id, word, translation, direction, created_at
		FROM words
		WHERE user_id = $1
			AND DATE(created_at AT TIME ZONE $2) = $3::date
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query, userID, r.timezone, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, *w)
	}

	return words, rows.Err()
}

// CleanOldWords deletes words older than specified days
func (r *WordRepo) CleanOldWords(days int) error {
	query := `
		DELETE FROM words
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	var direction string
	if err := row.Scan(&w.ID, &w.UserID, &w.Word, &w.Translation, &direction, &w.CreatedAt); err != nil {
		return nil, err
	}
	w.Direction = domain.Direction(direction)
	return &w, nil
}
