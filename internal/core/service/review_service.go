package service

import (
	"context"
	"errors"
	"time"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// ReviewService implements review submission and listing for vehicle detail
// pages.
type ReviewService struct {
	reviews  ports.ReviewRepository
	accounts ports.AccountRepository
}

func NewReviewService(reviews ports.ReviewRepository, accounts ports.AccountRepository) *ReviewService {
	return &ReviewService{reviews: reviews, accounts: accounts}
}

func (s *ReviewService) Add(ctx context.Context, vehicleID, accountID, text string) error {
	return s.reviews.Create(ctx, &domain.Review{
		VehicleID: vehicleID,
		AccountID: accountID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
}

// ListByVehicle returns reviews newest first with reviewer first names
// resolved. A review whose author account has vanished is shown as Anonymous
// rather than dropped.
func (s *ReviewService) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.ReviewWithAuthor, error) {
	reviews, err := s.reviews.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ReviewWithAuthor, 0, len(reviews))
	names := make(map[string]string, len(reviews))
	for _, r := range reviews {
		name, ok := names[r.AccountID]
		if !ok {
			account, err := s.accounts.FindByID(ctx, r.AccountID)
			switch {
			case err == nil:
				name = account.FirstName
			case errors.Is(err, domain.ErrAccountNotFound):
				name = "Anonymous"
			default:
				return nil, err
			}
			names[r.AccountID] = name
		}
		out = append(out, domain.ReviewWithAuthor{Review: r, AuthorFirstName: name})
	}
	return out, nil
}
