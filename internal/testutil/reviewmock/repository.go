package reviewmock

import (
	"context"

	domain "sacco-lending/internal/domain/review"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies review.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, r *domain.Review) error
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.Review, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Review) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Review, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
