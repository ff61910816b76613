package loan

import "context"

type ListFilter struct {
	Status   Status
	LoanType Type
	MemberID string
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetPendingLoanByMemberID(ctx context.Context, memberID string) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	// ListForPortfolio returns every live loan; the aggregate needs the full book.
	ListForPortfolio(ctx context.Context) ([]Loan, error)
}
