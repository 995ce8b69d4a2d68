package repository

import (
	"context"

	"github.com/mderbes/bookvault/internal/domain"
)

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, bookID, userID string) (*domain.Book, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, bookID, userID string) error
}
