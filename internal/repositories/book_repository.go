package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bookstore/backend/internal/models"
)

// bookRepository implements the book store over the books table
type bookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sql.DB) *bookRepository {
	return &bookRepository{
		db: db,
	}
}

// ListAll retrieves all books ordered by id
func (r *bookRepository) ListAll(ctx context.Context) ([]models.Book, error) {
	query := `
		SELECT id, title, author, description
		FROM books
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Description); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return books, nil
}

// GetByID retrieves a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	query := `
		SELECT id, title, author, description
		FROM books
		WHERE id = ?
		LIMIT 1
	`

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return book, nil
}

// Insert creates a new book row and sets its fresh id
func (r *bookRepository) Insert(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (title, author, description)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, book.Title, book.Author, book.Description)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	book.ID = int(id)
	return nil
}

// Update overwrites all fields of an existing book row
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET title = ?, author = ?, description = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, book.Title, book.Author, book.Description, book.ID)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrBookNotFound
	}

	return nil
}

// DeleteByID removes a book row. Deleting a nonexistent id is not an error.
func (r *bookRepository) DeleteByID(ctx context.Context, id int) error {
	query := `DELETE FROM books WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	return nil
}
