package reviewmock

import (
	"context"
	"testing"

	domain "sacco-lending/internal/domain/review"
)

func TestRepo(t *testing.T) {
	ctx := context.Background()

	var created *domain.Review
	m := &Repo{
		CreateFn: func(_ context.Context, r *domain.Review) error { created = r; return nil },
		ListByLoanIDFn: func(_ context.Context, loanID uint64) ([]domain.Review, error) {
			return []domain.Review{{LoanID: loanID, Action: domain.ActionApprove}}, nil
		},
	}
	r := &domain.Review{Action: domain.ActionReject}
	if err := m.Create(ctx, r); err != nil || created != r {
		t.Fatalf("Create: not forwarded (err=%v)", err)
	}
	rows, err := m.ListByLoanID(ctx, 42)
	if err != nil || len(rows) != 1 || rows[0].LoanID != 42 {
		t.Fatalf("ListByLoanID: got %+v, err=%v", rows, err)
	}

	m = &Repo{}
	if err := m.Create(ctx, r); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if _, err := m.ListByLoanID(ctx, 1); err != context.Canceled {
		t.Fatalf("ListByLoanID default: want context.Canceled, got %v", err)
	}
}
