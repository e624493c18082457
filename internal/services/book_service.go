package services

import (
	"context"
	"fmt"

	"github.com/bookstore/backend/internal/models"
	"go.uber.org/zap"
)

// BookRepository is the interface that wraps methods for books table data access
type BookRepository interface {
	// Method ListAll retrieves all books ordered by id.
	ListAll(ctx context.Context) ([]models.Book, error)
	// Method GetByID retrieves a book by ID.
	//
	// If no such book exists, models.ErrBookNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Book, error)
	// Method Insert creates a new book row and sets its fresh id.
	Insert(ctx context.Context, book *models.Book) error
	// Method Update overwrites all fields of an existing book row.
	//
	// If no such book exists, models.ErrBookNotFound is returned.
	Update(ctx context.Context, book *models.Book) error
	// Method DeleteByID removes a book row. Deleting a nonexistent id is not an error.
	DeleteByID(ctx context.Context, id int) error
}

// bookService implements catalog business logic
type bookService struct {
	bookRepo BookRepository
	logger   *zap.Logger
}

// NewBookService creates a new book service
func NewBookService(bookRepo BookRepository, logger *zap.Logger) *bookService {
	return &bookService{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

// List returns the full catalog in stable id order
func (s *bookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Get returns a single book by id
func (s *bookService) Get(ctx context.Context, id int) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

// Add creates a new book and returns it with its fresh id
func (s *bookService) Add(ctx context.Context, title, author, description string) (*models.Book, error) {
	book := &models.Book{
		Title:       title,
		Author:      author,
		Description: description,
	}
	if err := s.bookRepo.Insert(ctx, book); err != nil {
		return nil, err
	}
	s.logger.Info("book added", zap.Int("id", book.ID), zap.String("title", book.Title))
	return book, nil
}

// Edit overwrites all three fields of an existing book, empty strings included
func (s *bookService) Edit(ctx context.Context, id int, title, author, description string) error {
	book := &models.Book{
		ID:          id,
		Title:       title,
		Author:      author,
		Description: description,
	}
	return s.bookRepo.Update(ctx, book)
}

// Remove deletes a book. Removing a nonexistent id is not an error.
func (s *bookService) Remove(ctx context.Context, id int) error {
	if err := s.bookRepo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info("book deleted", zap.Int("id", id))
	return nil
}
