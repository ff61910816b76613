package lifecycle

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainLoan "sacco-lending/internal/domain/loan"
	domainRepayment "sacco-lending/internal/domain/repayment"
	domainReview "sacco-lending/internal/domain/review"
	"sacco-lending/internal/domain/uow"
	"sacco-lending/pkg/dates"
	"sacco-lending/pkg/id"
	"sacco-lending/pkg/money"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
	now func() time.Time
}

// NewUsecase: every staff action runs inside tx with the loan row locked.
func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log, now: time.Now}
}

func (u *Usecase) Approve(ctx context.Context, in DecisionInput) (*ReviewDTO, error) {
	at := u.at(in.At)
	return u.decide(ctx, in.LoanID, domainReview.ActionApprove, in.StaffID, in.Note, at, func(l *domainLoan.Loan) error {
		return l.Approve(in.StaffID, at)
	})
}

func (u *Usecase) Reject(ctx context.Context, in DecisionInput) (*ReviewDTO, error) {
	at := u.at(in.At)
	return u.decide(ctx, in.LoanID, domainReview.ActionReject, in.StaffID, in.Note, at, func(l *domainLoan.Loan) error {
		return l.Reject(in.StaffID, at)
	})
}

func (u *Usecase) Disburse(ctx context.Context, in DisburseInput) (*ReviewDTO, error) {
	at := u.at(in.DisbursementDate)
	return u.decide(ctx, in.LoanID, domainReview.ActionDisburse, in.StaffID, in.Note, at, func(l *domainLoan.Loan) error {
		return l.Disburse(in.StaffID, at)
	})
}

func (u *Usecase) Activate(ctx context.Context, in DecisionInput) (*ReviewDTO, error) {
	at := u.at(in.At)
	return u.decide(ctx, in.LoanID, domainReview.ActionActivate, in.StaffID, in.Note, at, func(l *domainLoan.Loan) error {
		return l.Activate(at)
	})
}

func (u *Usecase) MarkDefaulted(ctx context.Context, in DecisionInput) (*ReviewDTO, error) {
	at := u.at(in.At)
	return u.decide(ctx, in.LoanID, domainReview.ActionDefault, in.StaffID, in.Note, at, func(l *domainLoan.Loan) error {
		return l.MarkDefaulted(at)
	})
}

// decide locks the loan, applies move, saves it and appends a review row, all in one tx.
func (u *Usecase) decide(
	ctx context.Context,
	loanID string,
	action domainReview.Action,
	staffID, note string,
	at time.Time,
	move func(l *domainLoan.Loan) error,
) (*ReviewDTO, error) {
	var dto *ReviewDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		from := l.Status
		if err := move(l); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		rv := &domainReview.Review{
			ReviewID:   id.NewID32(),
			LoanID:     l.ID, // numeric FK
			Action:     action,
			FromStatus: string(from),
			ToStatus:   string(l.Status),
			StaffID:    staffID,
			Note:       note,
			ActedAt:    at,
		}
		if err := r.Reviews.Create(ctx, rv); err != nil {
			return err
		}

		dto = toReviewDTO(l.LoanID, rv)
		if action == domainReview.ActionDisburse {
			outstanding := l.OutstandingBalance
			dto.OutstandingBalance = &outstanding
			if l.NextPaymentDate != nil {
				dto.NextPaymentDate = dates.FormatDate(*l.NextPaymentDate)
			}
		}
		return nil
	})
	if err != nil {
		u.log.Warn("loan action refused",
			zap.String("loan_id", loanID),
			zap.String("action", string(action)),
			zap.String("staff_id", staffID),
			zap.Error(err),
		)
		return nil, notFound(err)
	}

	u.log.Info("loan status changed",
		zap.String("loan_id", dto.LoanID),
		zap.String("action", dto.Action),
		zap.String("from", dto.FromStatus),
		zap.String("to", dto.Status),
		zap.String("staff_id", staffID),
	)
	return dto, nil
}

func (u *Usecase) RecordPayment(ctx context.Context, in PaymentInput) (*PaymentDTO, error) {
	channel := domainRepayment.Channel(in.Channel)
	provider := domainRepayment.Provider(in.Provider)
	if err := checkChannel(channel, provider); err != nil {
		return nil, err
	}
	paidAt := u.at(in.PaidAt)

	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		applied, err := l.RecordPayment(in.Amount, paidAt)
		if err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		p := &domainRepayment.Repayment{
			RepaymentID:  id.NewID32(),
			LoanID:       l.ID,
			Amount:       in.Amount,
			Applied:      applied,
			BalanceAfter: l.OutstandingBalance,
			Channel:      channel,
			Provider:     provider,
			Reference:    in.Reference,
			StaffID:      in.StaffID,
			PaidAt:       paidAt,
		}
		if err := r.Repayments.Create(ctx, p); err != nil {
			return err
		}
		dto = toPaymentDTO(l.LoanID, p)
		dto.Status = string(l.Status)
		if l.NextPaymentDate != nil {
			dto.NextPaymentDate = dates.FormatDate(*l.NextPaymentDate)
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}

	fields := []zap.Field{
		zap.String("loan_id", dto.LoanID),
		zap.String("applied", dto.Applied.StringFixed(2)),
		zap.String("balance", dto.BalanceAfter.StringFixed(2)),
		zap.String("channel", dto.Channel),
	}
	if dto.Status == string(domainLoan.StatusCompleted) {
		u.log.Info("loan repaid in full", fields...)
	} else {
		u.log.Info("payment recorded", fields...)
	}
	return dto, nil
}

// Repayments lists the payments booked against a loan, oldest first.
func (u *Usecase) Repayments(ctx context.Context, loanID string) ([]PaymentDTO, error) {
	var out []PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		rows, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]PaymentDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *toPaymentDTO(l.LoanID, &rows[i]))
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

// Reviews lists the staff decisions taken on a loan, oldest first.
func (u *Usecase) Reviews(ctx context.Context, loanID string) ([]ReviewDTO, error) {
	var out []ReviewDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		rows, err := r.Reviews.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]ReviewDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *toReviewDTO(l.LoanID, &rows[i]))
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func checkChannel(c domainRepayment.Channel, p domainRepayment.Provider) error {
	if !c.Valid() {
		return domainLoan.InvalidField("channel", "must be one of cash, bank, mobile_money, checkoff")
	}
	if c == domainRepayment.ChannelMobileMoney && !p.Valid() {
		return domainLoan.InvalidField("provider", "must be mtn or airtel for mobile_money")
	}
	if c != domainRepayment.ChannelMobileMoney && p != "" {
		return domainLoan.InvalidField("provider", "only applies to mobile_money")
	}
	return nil
}

func toReviewDTO(loanID string, rv *domainReview.Review) *ReviewDTO {
	return &ReviewDTO{
		ReviewID:   rv.ReviewID,
		LoanID:     loanID, // public id
		Action:     string(rv.Action),
		FromStatus: rv.FromStatus,
		Status:     rv.ToStatus,
		StaffID:    rv.StaffID,
		Note:       rv.Note,
		ActedAt:    rv.ActedAt,
	}
}

func toPaymentDTO(loanID string, p *domainRepayment.Repayment) *PaymentDTO {
	return &PaymentDTO{
		RepaymentID:  p.RepaymentID,
		LoanID:       loanID,
		Amount:       p.Amount,
		Applied:      p.Applied,
		BalanceAfter: p.BalanceAfter,
		BalanceText:  money.FormatUGX(p.BalanceAfter),
		Channel:      string(p.Channel),
		Provider:     string(p.Provider),
		Reference:    p.Reference,
		PaidAt:       p.PaidAt,
	}
}

func (u *Usecase) at(t time.Time) time.Time {
	if t.IsZero() {
		return u.now().UTC()
	}
	return t.UTC()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainLoan.ErrNotFound
	}
	return err
}
