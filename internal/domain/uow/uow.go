package uow

import (
	"context"

	"sacco-lending/internal/domain/loan"
	"sacco-lending/internal/domain/repayment"
	"sacco-lending/internal/domain/review"
)

type Repos struct {
	Loans      loan.Repository
	Reviews    review.Repository
	Repayments repayment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
