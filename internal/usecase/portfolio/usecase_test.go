package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sacco-lending/internal/domain/loan"
	"sacco-lending/internal/testutil/loanmock"
)

func book(now time.Time) []loan.Loan {
	late := now.AddDate(0, 0, -3)
	soon := now.AddDate(0, 0, 10)
	mk := func(status loan.Status, principal, outstanding int64, next *time.Time) loan.Loan {
		return loan.Loan{
			Status:             status,
			PrincipalAmount:    decimal.NewFromInt(principal),
			OutstandingBalance: decimal.NewFromInt(outstanding),
			NextPaymentDate:    next,
		}
	}
	return []loan.Loan{
		mk(loan.StatusActive, 1_000_000, 200_000, &soon),
		mk(loan.StatusActive, 1_000_000, 900_000, &late),
		mk(loan.StatusDefaulted, 1_000_000, 300_000, nil),
		mk(loan.StatusPending, 500_000, 0, nil),
	}
}

func TestSummary(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	uc := NewUsecase(&loanmock.Repo{
		ListForPortfolioFn: func(context.Context) ([]loan.Loan, error) { return book(now), nil },
	}, nil)
	uc.now = func() time.Time { return now }

	got, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary err: %v", err)
	}
	if got.ActiveCount != 2 || got.PendingCount != 1 || got.DefaultedCount != 1 {
		t.Fatalf("counts: %+v", got.Snapshot)
	}
	if got.RiskBuckets.Low != 1 || got.RiskBuckets.High != 1 || got.RiskBuckets.Medium != 0 {
		t.Fatalf("buckets: %+v", got.RiskBuckets)
	}
	if got.OverdueCount != 1 {
		t.Fatalf("overdue: want 1, got %d", got.OverdueCount)
	}
	if got.OutstandingText != "UGX 1,100,000" || got.AtRiskText != "UGX 300,000" {
		t.Fatalf("display: %q %q", got.OutstandingText, got.AtRiskText)
	}
	if !got.PortfolioAtRisk.Equal(decimal.RequireFromString("0.2143")) || got.PortfolioAtRiskP != "21.43%" {
		t.Fatalf("par: %s / %s", got.PortfolioAtRisk, got.PortfolioAtRiskP)
	}
	if !got.GeneratedAt.Equal(now) {
		t.Fatalf("generated_at: %v", got.GeneratedAt)
	}
}

func TestSummary_EmptyBook(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{
		ListForPortfolioFn: func(context.Context) ([]loan.Loan, error) { return nil, nil },
	}, nil)

	got, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary err: %v", err)
	}
	if got.ActiveCount != 0 || !got.PortfolioAtRisk.IsZero() || got.PortfolioAtRiskP != "0.00%" || got.OutstandingText != "UGX 0" {
		t.Fatalf("empty book: %+v", got)
	}
}

func TestSummary_RepoError(t *testing.T) {
	boom := errors.New("db down")
	uc := NewUsecase(&loanmock.Repo{
		ListForPortfolioFn: func(context.Context) ([]loan.Loan, error) { return nil, boom },
	}, nil)
	if _, err := uc.Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}
