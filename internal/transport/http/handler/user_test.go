package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mderbes/bookvault/internal/domain"
	"github.com/mderbes/bookvault/internal/transport/http/handler"
)

type fakeUserUsecase struct {
	register           func(ctx context.Context, email, password string) (*domain.User, error)
	resendVerification func(ctx context.Context, email string) error
	verifyAccount      func(ctx context.Context, rawToken string) (*domain.User, error)
}

func (f *fakeUserUsecase) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return f.register(ctx, email, password)
}

func (f *fakeUserUsecase) ResendVerification(ctx context.Context, email string) error {
	return f.resendVerification(ctx, email)
}

func (f *fakeUserUsecase) VerifyAccount(ctx context.Context, rawToken string) (*domain.User, error) {
	return f.verifyAccount(ctx, rawToken)
}

func newUserEngine(uc *fakeUserUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewUserHandler(uc, logger)

	r := gin.New()
	r.POST("/api/users", h.Register)
	r.POST("/api/users/resend", h.Resend)
	r.GET("/api/users/verify/:token", h.Verify)
	return r
}

func TestRegister_ShortPassword_Returns400(t *testing.T) {
	// Rejected by binding before the usecase runs.
	w := doJSON(t, newUserEngine(&fakeUserUsecase{}), http.MethodPost, "/api/users",
		`{"email":"a@b.com","password":"short"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodPost, "/api/users",
		`{"email":"a@b.com","password":"secret1"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_Success_Returns201WithID(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email}, nil
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodPost, "/api/users",
		`{"email":"a@b.com","password":"secret1"}`)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), "user-1") {
		t.Errorf("body %q lacks user id", w.Body.String())
	}
}

func TestRegister_DeliveryError_Returns201WithWarning(t *testing.T) {
	// The account and its verify token are committed even when the mail bounces;
	// reporting a failure would send the client back into a duplicate-email loop.
	uc := &fakeUserUsecase{
		register: func(_ context.Context, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email}, domain.ErrDeliveryFailed
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodPost, "/api/users",
		`{"email":"a@b.com","password":"secret1"}`)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if !strings.Contains(w.Body.String(), "user-1") {
		t.Errorf("body %q lacks user id", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "verification email") {
		t.Errorf("body %q does not mention the failed verification email", w.Body.String())
	}
}

func TestResend_UnknownEmail_Returns401(t *testing.T) {
	uc := &fakeUserUsecase{
		resendVerification: func(_ context.Context, _ string) error {
			return domain.ErrUnknownAccount
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodPost, "/api/users/resend",
		`{"email":"nobody@b.com"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestResend_AlreadyVerified_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		resendVerification: func(_ context.Context, _ string) error {
			return domain.ErrAlreadyVerified
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodPost, "/api/users/resend",
		`{"email":"a@b.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestResend_Success_Returns200Text(t *testing.T) {
	uc := &fakeUserUsecase{
		resendVerification: func(_ context.Context, email string) error {
			if email != "a@b.com" {
				t.Errorf("email = %q, want a@b.com", email)
			}
			return nil
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodPost, "/api/users/resend",
		`{"email":"a@b.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "a@b.com") {
		t.Errorf("body %q lacks confirmation", w.Body.String())
	}
}

func TestVerify_InvalidToken_Returns401(t *testing.T) {
	uc := &fakeUserUsecase{
		verifyAccount: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrTokenInvalid
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodGet, "/api/users/verify/bad", "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestVerify_ValidToken_Returns200(t *testing.T) {
	uc := &fakeUserUsecase{
		verifyAccount: func(_ context.Context, rawToken string) (*domain.User, error) {
			return &domain.User{ID: "user-1", IsVerified: true}, nil
		},
	}
	w := doJSON(t, newUserEngine(uc), http.MethodGet, "/api/users/verify/T", "")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "verified") {
		t.Errorf("body %q lacks confirmation", w.Body.String())
	}
}
