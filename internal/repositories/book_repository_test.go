package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bookstore/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupBookTestRepository creates a book repository with a mock database
func setupBookTestRepository(t *testing.T) (*bookRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewBookRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestBookRepository_ListAll(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedBooks []models.Book
	}{
		{
			name: "success with rows in id order",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "author", "description"}).
					AddRow(1, "Dune", "Frank Herbert", "Desert planet").
					AddRow(2, "Neuromancer", "William Gibson", "Cyberspace")
				mock.ExpectQuery(`SELECT id, title, author, description FROM books ORDER BY id`).
					WillReturnRows(rows)
			},
			expectedBooks: []models.Book{
				{ID: 1, Title: "Dune", Author: "Frank Herbert", Description: "Desert planet"},
				{ID: 2, Title: "Neuromancer", Author: "William Gibson", Description: "Cyberspace"},
			},
		},
		{
			name: "success with empty table",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "author", "description"})
				mock.ExpectQuery(`SELECT id, title, author, description FROM books ORDER BY id`).
					WillReturnRows(rows)
			},
			expectedBooks: nil,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, author, description FROM books ORDER BY id`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "author", "description"}).
					AddRow("invalid", "Dune", "Frank Herbert", "Desert planet")
				mock.ExpectQuery(`SELECT id, title, author, description FROM books ORDER BY id`).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupBookTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			books, err := repo.ListAll(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, books)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBooks, books)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedBook  *models.Book
	}{
		{
			name: "success",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "author", "description"}).
					AddRow(1, "Dune", "Frank Herbert", "Desert planet")
				mock.ExpectQuery(`SELECT id, title, author, description FROM books WHERE id = \? LIMIT 1`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedBook: &models.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Description: "Desert planet"},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, author, description FROM books WHERE id = \? LIMIT 1`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrBookNotFound,
		},
		{
			name: "database error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, author, description FROM books WHERE id = \? LIMIT 1`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupBookTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			book, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Nil(t, book)
				if errors.Is(tt.expectedError, models.ErrBookNotFound) {
					assert.ErrorIs(t, err, models.ErrBookNotFound)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBook, book)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookRepository_Insert(t *testing.T) {
	t.Run("success sets fresh id", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO books`).
			WithArgs("Dune", "Frank Herbert", "Desert planet").
			WillReturnResult(sqlmock.NewResult(7, 1))

		book := &models.Book{Title: "Dune", Author: "Frank Herbert", Description: "Desert planet"}
		err := repo.Insert(context.Background(), book)

		require.NoError(t, err)
		assert.Equal(t, 7, book.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty fields are stored as-is", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO books`).
			WithArgs("", "", "").
			WillReturnResult(sqlmock.NewResult(8, 1))

		book := &models.Book{}
		err := repo.Insert(context.Background(), book)

		require.NoError(t, err)
		assert.Equal(t, 8, book.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`INSERT INTO books`).
			WithArgs("Dune", "Frank Herbert", "Desert planet").
			WillReturnError(errors.New("database error"))

		book := &models.Book{Title: "Dune", Author: "Frank Herbert", Description: "Desert planet"}
		err := repo.Insert(context.Background(), book)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepository_Update(t *testing.T) {
	t.Run("success overwrites all fields", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE books SET title = \?, author = \?, description = \? WHERE id = \?`).
			WithArgs("New Title", "New Author", "", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &models.Book{ID: 1, Title: "New Title", Author: "New Author", Description: ""})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nonexistent id returns not found", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE books SET title = \?, author = \?, description = \? WHERE id = \?`).
			WithArgs("New Title", "New Author", "", 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &models.Book{ID: 99, Title: "New Title", Author: "New Author", Description: ""})

		assert.ErrorIs(t, err, models.ErrBookNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`UPDATE books SET title = \?, author = \?, description = \? WHERE id = \?`).
			WithArgs("New Title", "New Author", "", 1).
			WillReturnError(errors.New("database error"))

		err := repo.Update(context.Background(), &models.Book{ID: 1, Title: "New Title", Author: "New Author", Description: ""})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrBookNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepository_DeleteByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM books WHERE id = \?`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteByID(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nonexistent id is not an error", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM books WHERE id = \?`).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.DeleteByID(context.Background(), 99))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupBookTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM books WHERE id = \?`).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		assert.Error(t, repo.DeleteByID(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
