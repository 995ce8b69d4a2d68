package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mderbes/bookvault/internal/domain"
)

const bookColumns = `id, user_id, title, author, isbn, date, description, created_at, updated_at`

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	query := `INSERT INTO books (id, user_id, title, author, isbn, date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookColumns

	row := r.pool.QueryRow(ctx, query,
		book.ID, book.UserID, book.Title, book.Author, book.ISBN, book.Date, book.Description)
	created, err := scanBook(row)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return created, nil
}

func (r *BookRepository) GetByID(ctx context.Context, bookID, userID string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 AND user_id = $2`
	return scanBook(r.pool.QueryRow(ctx, query, bookID, userID))
}

func (r *BookRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	query := `UPDATE books
		SET title = $3, author = $4, isbn = $5, date = $6, description = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + bookColumns

	row := r.pool.QueryRow(ctx, query,
		book.ID, book.UserID, book.Title, book.Author, book.ISBN, book.Date, book.Description)
	return scanBook(row)
}

func (r *BookRepository) Delete(ctx context.Context, bookID, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1 AND user_id = $2`, bookID, userID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ID, &b.UserID, &b.Title, &b.Author, &b.ISBN, &b.Date, &b.Description,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}
	return &b, nil
}
