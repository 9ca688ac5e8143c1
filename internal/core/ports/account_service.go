package ports

import (
	"context"
	"time"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/validation"
)

// RegisterInput carries the already format-validated registration fields.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateProfileInput carries a profile edit for an existing account.
type UpdateProfileInput struct {
	AccountID string
	FirstName string
	LastName  string
	Email     string
}

// AccountService implements registration, login, and account maintenance.
// Methods that depend on store state (email uniqueness) return a
// validation.Errors set for user-input problems and a non-nil error only for
// system failures; the two never overlap.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, validation.Errors, error)
	Login(ctx context.Context, email, password string) (tokenString string, account *domain.Account, err error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.Account, validation.Errors, error)
	UpdatePassword(ctx context.Context, accountID, password string) error
	AccountByID(ctx context.Context, id string) (*domain.Account, error)

	// IssueSession mints a fresh session token for an account snapshot,
	// used after a profile edit so outstanding claims match the store.
	IssueSession(account *domain.Account) (string, error)
	// TokenTTL is the validity window of issued sessions; the cookie
	// max-age must match it.
	TokenTTL() time.Duration
}
