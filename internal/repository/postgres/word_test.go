package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguabird/internal/domain"
)

var wordColumns = []string{"id", "user_id", "word", "translation", "direction", "created_at"}

func TestNewWordRepo_DefaultTimezone(t *testing.T) {
	db, _ := newMock(t)
	assert.Equal(t, "UTC", NewWordRepo(db, "").timezone)
	assert.Equal(t, "Europe/Moscow", NewWordRepo(db, "Europe/Moscow").timezone)
}

func TestWordRepo_SaveWords(t *testing.T) {
	pairs := []domain.WordPair{
		{Source: "cat", Target: "кошка"},
		{Source: "dog", Target: "собака"},
	}

	t.Run("commits all pairs", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewWordRepo(db, "UTC")

		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO words")
		prep.ExpectExec().WithArgs(int64(7), "cat", "кошка", "en-ru").WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs(int64(7), "dog", "собака", "en-ru").WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveWords(7, domain.DirectionEnRu, pairs))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewWordRepo(db, "UTC")

		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO words")
		prep.ExpectExec().WithArgs(int64(7), "cat", "кошка", "en-ru").WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().WithArgs(int64(7), "dog", "собака", "en-ru").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.SaveWords(7, domain.DirectionEnRu, pairs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dog")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewWordRepo(db, "UTC")

		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		assert.Error(t, repo.SaveWords(7, domain.DirectionEnRu, pairs))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewWordRepo(db, "UTC")

		require.NoError(t, repo.SaveWords(7, domain.DirectionEnRu, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWordRepo_GetRandomWord(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		rows      *sqlmock.Rows
		queryErr  error
		wantNil   bool
		wantError bool
	}{
		{
			name: "word found",
			rows: sqlmock.NewRows(wordColumns).AddRow(1, 7, "cat", "кошка", "en-ru", created),
		},
		{
			name:     "no words",
			queryErr: sql.ErrNoRows,
			wantNil:  true,
		},
		{
			name:      "scan error",
			rows:      sqlmock.NewRows(wordColumns).AddRow("bad", 7, "cat", "кошка", "en-ru", created),
			wantNil:   true,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewWordRepo(db, "UTC")

			exp := mock.ExpectQuery("SELECT id, user_id, word, translation, direction, created_at").WithArgs(int64(7))
			if tt.queryErr != nil {
				exp.WillReturnError(tt.queryErr)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			word, err := repo.GetRandomWord(7)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, word)
			} else {
				require.NotNil(t, word)
				assert.Equal(t, "cat", word.Word)
				assert.Equal(t, domain.DirectionEnRu, word.Direction)
				assert.Equal(t, created, word.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepo_GetDaysWithWords(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWordRepo(db, "Europe/Moscow")

	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	mock.ExpectQuery(`SELECT DATE\(created_at AT TIME ZONE \$2\) AS day, COUNT\(\*\)`).
		WithArgs(int64(7), "Europe/Moscow", 7, 14, historyWindowDays).
		WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).
			AddRow(today, 4).
			AddRow(yesterday, 2))

	days, err := repo.GetDaysWithWords(7, 7, 14)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, domain.Day{Date: today, WordCount: 4}, days[0])
	assert.Equal(t, "20260301", days[1].DateString())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetDaysWithWords_QueryError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWordRepo(db, "UTC")

	mock.ExpectQuery("SELECT DATE").WillReturnError(errors.New("timeout"))

	days, err := repo.GetDaysWithWords(7, 7, 0)
	assert.Error(t, err)
	assert.Nil(t, days)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetTotalDaysCount(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWordRepo(db, "UTC")

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT DATE\(created_at AT TIME ZONE \$2\)\)`).
		WithArgs(int64(7), "UTC", historyWindowDays).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	count, err := repo.GetTotalDaysCount(7)
	require.NoError(t, err)
	assert.Equal(t, 9, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetWordsByDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWordRepo(db, "UTC")

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY created_at, id`).
		WithArgs(int64(7), "UTC", "2026-03-01").
		WillReturnRows(sqlmock.NewRows(wordColumns).
			AddRow(1, 7, "cat", "кошка", "en-ru", first).
			AddRow(2, 7, "dog", "собака", "en-uk", first.Add(time.Minute)))

	words, err := repo.GetWordsByDate(7, date)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, domain.WordPair{Source: "cat", Target: "кошка"}, words[0].Pair())
	assert.Equal(t, domain.DirectionEnUk, words[1].Direction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepo_GetWordsByDate_ScanError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWordRepo(db, "UTC")

	mock.ExpectQuery("SELECT id, user_id").
		WillReturnRows(sqlmock.NewRows(wordColumns).AddRow("x", 7, "cat", "кошка", "en-ru", time.Now()))

	words, err := repo.GetWordsByDate(7, time.Now())
	assert.Error(t, err)
	assert.Nil(t, words)
}

func TestWordRepo_CleanOldWords(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWordRepo(db, "UTC")

	mock.ExpectExec("DELETE FROM words").
		WithArgs(60).
		WillReturnResult(sqlmock.NewResult(0, 12))

	require.NoError(t, repo.CleanOldWords(60))
	assert.NoError(t, mock.ExpectationsWereMet())
}
