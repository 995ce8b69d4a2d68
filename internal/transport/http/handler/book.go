package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mderbes/bookvault/internal/domain"
	"github.com/mderbes/bookvault/internal/usecase"
)

type BookHandler struct {
	bookUsecase *usecase.BookUsecase
	logger      *slog.Logger
}

func NewBookHandler(bookUsecase *usecase.BookUsecase, logger *slog.Logger) *BookHandler {
	return &BookHandler{bookUsecase: bookUsecase, logger: logger.With("component", "book_handler")}
}

type bookRequest struct {
	Title       string `json:"title"  binding:"required"`
	Author      string `json:"author" binding:"required"`
	ISBN        string `json:"isbn"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type bookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	ISBN        string    `json:"isbn"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Date:        b.Date,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r bookRequest) toInput() usecase.BookInput {
	return usecase.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Date:        r.Date,
		Description: r.Description,
	}
}

func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.bookUsecase.Create(c.Request.Context(), c.GetString("userID"), req.toInput())
	if err != nil {
		h.logger.Error("create book", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(book))
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.bookUsecase.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.Error("list books", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookHandler) GetByID(c *gin.Context) {
	book, err := h.bookUsecase.GetByID(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBookNotFound})
			return
		}
		h.logger.Error("get book by id", "book_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (h *BookHandler) Update(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.bookUsecase.Update(c.Request.Context(), c.Param("id"), c.GetString("userID"), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBookNotFound})
			return
		}
		h.logger.Error("update book", "book_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (h *BookHandler) Delete(c *gin.Context) {
	err := h.bookUsecase.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBookNotFound})
			return
		}
		h.logger.Error("delete book", "book_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}
