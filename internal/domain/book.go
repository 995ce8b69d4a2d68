package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")

type Book struct {
	ID          string
	UserID      string
	Title       string
	Author      string
	ISBN        string
	Date        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
