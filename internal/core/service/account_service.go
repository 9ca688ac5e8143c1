package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/token"
	"github.com/csemotors/dealership/internal/validation"
)

const emailTakenMessage = "Email exists. Please log in or use a different email."

// AccountService implements registration, login, and account maintenance on
// top of the credential store.
type AccountService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAccountService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// TokenTTL returns the configured token validity window. The cookie max-age
// must match it.
func (s *AccountService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register creates a new Client account. Input-level problems (email already
// registered) come back as validation.Errors; hashing or store failures come
// back as a plain error and must be treated as system failures, not user
// mistakes.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, validation.Errors, error) {
	exists, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("check existing email: %w", err)
	}
	if exists {
		var errs validation.Errors
		errs.Add("account_email", emailTakenMessage)
		return nil, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		// The store's unique index is the real uniqueness backstop; a race
		// between the advisory check above and the insert lands here.
		if errors.Is(err, domain.ErrEmailTaken) {
			var errs validation.Errors
			errs.Add("account_email", emailTakenMessage)
			return nil, errs, nil
		}
		return nil, nil, err
	}
	return created, nil, nil
}

// Login verifies credentials and issues a session token on success. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Issue(account, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, account, nil
}

// UpdateProfile edits name and email. The email conflict check is scoped: an
// email that already exists but belongs to the account being edited passes.
// The fresh account is returned so the caller can re-issue the session token.
func (s *AccountService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.Account, validation.Errors, error) {
	exists, err := s.repo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("check existing email: %w", err)
	}
	if exists {
		owner, err := s.repo.FindByEmail(ctx, in.Email)
		if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, nil, err
		}
		if owner != nil && owner.ID != in.AccountID {
			var errs validation.Errors
			errs.Add("account_email", emailTakenMessage)
			return nil, errs, nil
		}
	}

	updated, err := s.repo.UpdateProfile(ctx, in.AccountID, in.FirstName, in.LastName, in.Email)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// IssueSession mints a fresh session token for the given account snapshot.
func (s *AccountService) IssueSession(account *domain.Account) (string, error) {
	return token.Issue(account, s.jwtSecret, s.tokenTTL)
}

// UpdatePassword hashes the new password with a fresh salt and persists it.
// The plaintext never goes past this call.
func (s *AccountService) UpdatePassword(ctx context.Context, accountID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, accountID, string(hash))
}

// AccountByID loads a single account, for the update form prefill.
func (s *AccountService) AccountByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}
