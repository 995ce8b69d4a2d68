package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/mderbes/bookvault/internal/domain"
	"github.com/mderbes/bookvault/internal/repository"
)

type BookUsecase struct {
	books repository.BookRepository
}

func NewBookUsecase(books repository.BookRepository) *BookUsecase {
	return &BookUsecase{books: books}
}

type BookInput struct {
	Title       string
	Author      string
	ISBN        string
	Date        string
	Description string
}

func (u *BookUsecase) Create(ctx context.Context, userID string, in BookInput) (*domain.Book, error) {
	return u.books.Create(ctx, &domain.Book{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Date:        in.Date,
		Description: in.Description,
	})
}

func (u *BookUsecase) GetByID(ctx context.Context, bookID, userID string) (*domain.Book, error) {
	return u.books.GetByID(ctx, bookID, userID)
}

func (u *BookUsecase) List(ctx context.Context, userID string) ([]*domain.Book, error) {
	return u.books.ListByUser(ctx, userID)
}

func (u *BookUsecase) Update(ctx context.Context, bookID, userID string, in BookInput) (*domain.Book, error) {
	return u.books.Update(ctx, &domain.Book{
		ID:          bookID,
		UserID:      userID,
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Date:        in.Date,
		Description: in.Description,
	})
}

func (u *BookUsecase) Delete(ctx context.Context, bookID, userID string) error {
	return u.books.Delete(ctx, bookID, userID)
}
