package review

import "context"

type Repository interface {
	Create(ctx context.Context, r *Review) error

	// Decisions on a loan, oldest first
	ListByLoanID(ctx context.Context, loanID uint64) ([]Review, error)
}
