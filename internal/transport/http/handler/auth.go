package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mderbes/bookvault/internal/domain"
	"github.com/mderbes/bookvault/internal/metrics"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	CheckResetToken(ctx context.Context, rawToken string) error
	ConfirmPasswordReset(ctx context.Context, rawToken, newPassword string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type recoverRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetRequest struct {
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// GET /api/auth
// Returns the logged-in user, password hash excluded.
func (h *AuthHandler) Current(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.authUsecase.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("current user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:         user.ID,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	})
}

// POST /api/auth
// Returns {"token": "<jwt>"} on success. Invalid credentials and unverified
// accounts are both 400, with messages that never reveal whether the email exists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
		case errors.Is(err, domain.ErrNotVerified):
			metrics.LoginsTotal.WithLabelValues("not_verified").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errNotVerified})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /api/auth/recover
// Issues a reset token and emails the reset link. Unknown email is 401.
func (h *AuthHandler) Recover(c *gin.Context) {
	var req recoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUnknownAccount) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": fmt.Sprintf("The email address %s is not associated with any account. Double-check your email address and try again", req.Email),
			})
			return
		}
		h.logger.Error("request password reset", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	c.String(http.StatusOK, "A password reset email has been sent to %s", req.Email)
}

// GET /api/auth/reset/:token
// Pure validity check, no state change.
func (h *AuthHandler) CheckReset(c *gin.Context) {
	if err := h.authUsecase.CheckResetToken(c.Request.Context(), c.Param("token")); err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}
		h.logger.Error("check reset token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.String(http.StatusOK, "Password reset token is valid.")
}

// POST /api/auth/reset/:token
// Commits the new password and consumes the token.
func (h *AuthHandler) ConfirmReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authUsecase.ConfirmPasswordReset(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrPasswordTooShort.Error()})
		case errors.Is(err, domain.ErrTokenInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
		case errors.Is(err, domain.ErrDeliveryFailed):
			// The new password is committed and the token consumed; only the
			// confirmation mail failed. A 500 here would read as "try again",
			// but a retry hits the consumed token and gets 401.
			metrics.PasswordResetsTotal.WithLabelValues("consumed").Inc()
			h.logger.Error("confirm password reset", "error", err)
			c.String(http.StatusOK, "Your password has been updated, but the confirmation email could not be sent.")
		default:
			h.logger.Error("confirm password reset", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.PasswordResetsTotal.WithLabelValues("consumed").Inc()
	c.String(http.StatusOK, "Your password has been updated.")
}
