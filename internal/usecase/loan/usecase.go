package loan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "sacco-lending/internal/domain/loan"
	"sacco-lending/internal/domain/uow"
	"sacco-lending/pkg/dates"
	"sacco-lending/pkg/money"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
	now  func() time.Time
}

// NewUsecase: reads go through repo, term amendments through tx so the loan row is locked.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, log: log, now: time.Now}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*LoanDTO, error) {
	typ := domain.Type(in.LoanType)
	product, known := domain.ProductFor(typ)

	rate := decimal0(in.InterestRate)
	term := in.TermMonths
	if known {
		if in.InterestRate == nil {
			rate = product.InterestRate
		}
		if term == 0 {
			term = product.DefaultTermMonths
		}
	}

	l, err := domain.NewApplication(domain.ApplicationInput{
		MemberID:        in.MemberID,
		LoanType:        typ,
		PrincipalAmount: in.PrincipalAmount,
		InterestRate:    rate,
		TermMonths:      term,
		Guarantors:      in.Guarantors,
		Purpose:         in.Purpose,
	}, u.now())
	if err != nil {
		return nil, err
	}
	if !product.Allows(l.PrincipalAmount) {
		return nil, limitsErr(product)
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Block if the member already has a pending application.
		pending, err := r.Loans.GetPendingLoanByMemberID(ctx, l.MemberID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: member %s, loan %s", domain.ErrPendingApplication, l.MemberID, pending.LoanID)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return r.Loans.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("loan application created",
		zap.String("loan_id", l.LoanID),
		zap.String("member_id", l.MemberID),
		zap.String("loan_type", string(l.LoanType)),
		zap.String("principal", l.PrincipalAmount.StringFixed(2)),
	)
	return toDTO(l, u.now()), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err)
	}
	return toDTO(l, u.now()), nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]LoanDTO, error) {
	f := domain.ListFilter{
		Status:   domain.Status(in.Status),
		LoanType: domain.Type(in.LoanType),
		MemberID: in.MemberID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.InvalidField("status", "must be one of "+joinStrings(domain.Statuses()))
	}
	if f.LoanType != "" && !f.LoanType.Valid() {
		return nil, domain.InvalidField("type", "must be one of "+joinStrings(domain.Types()))
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	rows, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := u.now()
	out := make([]LoanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i], now))
	}
	return out, nil
}

func (u *Usecase) Schedule(ctx context.Context, loanID string) (*ScheduleDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err)
	}
	plan, err := l.Schedule()
	if err != nil {
		return nil, err
	}

	dto := &ScheduleDTO{
		LoanID:         l.LoanID,
		MonthlyPayment: l.MonthlyPayment,
		Installments:   make([]InstallmentDTO, 0, len(plan)),
	}
	for _, in := range plan {
		dto.TotalPayable = dto.TotalPayable.Add(in.Payment)
		dto.TotalInterest = dto.TotalInterest.Add(in.Interest)
		dto.Installments = append(dto.Installments, InstallmentDTO{
			Number:    in.Number,
			DueDate:   dates.FormatDate(in.DueDate),
			Payment:   in.Payment,
			Principal: in.Principal,
			Interest:  in.Interest,
			Balance:   in.Balance,
		})
	}
	return dto, nil
}

// Amend changes the terms of a pending or approved loan under a row lock.
func (u *Usecase) Amend(ctx context.Context, loanID string, in AmendInput) (*LoanDTO, error) {
	var out *domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		principal, rate, term := l.PrincipalAmount, l.InterestRate, l.TermMonths
		if in.PrincipalAmount != nil {
			principal = *in.PrincipalAmount
		}
		if in.InterestRate != nil {
			rate = *in.InterestRate
		}
		if in.TermMonths != nil {
			term = *in.TermMonths
		}
		if err := l.Amend(principal, rate, term); err != nil {
			return err
		}
		if p, ok := domain.ProductFor(l.LoanType); ok && !p.Allows(l.PrincipalAmount) {
			return limitsErr(p)
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	u.log.Info("loan terms amended",
		zap.String("loan_id", out.LoanID),
		zap.String("principal", out.PrincipalAmount.StringFixed(2)),
		zap.String("rate", out.InterestRate.String()),
		zap.Int("term_months", out.TermMonths),
	)
	return toDTO(out, u.now()), nil
}

func (u *Usecase) Products() []ProductDTO {
	ps := domain.Products()
	out := make([]ProductDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, ProductDTO{
			Product: p,
			Range:   money.FormatUGX(p.MinAmount) + " - " + money.FormatUGX(p.MaxAmount),
		})
	}
	return out
}

func limitsErr(p domain.Product) error {
	return fmt.Errorf("%w: %s accepts %s to %s", domain.ErrOutsideProductLimits,
		p.Name, money.FormatUGX(p.MinAmount), money.FormatUGX(p.MaxAmount))
}

func joinStrings[T ~string](vs []T) string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func decimal0(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
