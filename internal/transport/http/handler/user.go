package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mderbes/bookvault/internal/domain"
)

type userUsecaser interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	ResendVerification(ctx context.Context, email string) error
	VerifyAccount(ctx context.Context, rawToken string) (*domain.User, error)
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/users
// Creates an unverified account and emails the verification link.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": errDuplicateEmail})
		case errors.Is(err, domain.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrPasswordTooShort.Error()})
		case errors.Is(err, domain.ErrDeliveryFailed):
			// The account and its verification token are committed; only the
			// mail failed. Report the creation so the client can re-request the
			// email instead of re-registering into a duplicate-email error.
			h.logger.Error("register", "error", err)
			c.JSON(http.StatusCreated, gin.H{
				"id":      user.ID,
				"warning": "verification email could not be sent, request a new one",
			})
		default:
			h.logger.Error("register", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

type resendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/users/resend
// Re-issues the verification token for an unverified account, replacing any
// earlier one.
func (h *UserHandler) Resend(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userUsecase.ResendVerification(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownAccount):
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnknownAccount.Error()})
		case errors.Is(err, domain.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrAlreadyVerified.Error()})
		default:
			h.logger.Error("resend verification", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.String(http.StatusOK, "A verification email has been sent to %s", req.Email)
}

// GET /api/users/verify/:token
func (h *UserHandler) Verify(c *gin.Context) {
	_, err := h.userUsecase.VerifyAccount(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}
		h.logger.Error("verify account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.String(http.StatusOK, "Your account has been verified.")
}
