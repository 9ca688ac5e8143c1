package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// AccountRepository defines the persistence operations the credential store
// exposes for accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}
