package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"sacco-lending/pkg/dates"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusDisbursed},
	StatusDisbursed: {StatusActive},
	StatusActive:    {StatusCompleted, StatusDefaulted},
}

// CanTransition reports whether the lifecycle allows moving from -> to directly.
func CanTransition(from, to Status) bool {
	if from.IsTerminal() {
		return false
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (l *Loan) moveTo(to Status, action string, at time.Time) error {
	if !CanTransition(l.Status, to) {
		return &TransitionError{From: l.Status, Action: action}
	}
	l.Status = to
	l.StatusUpdatedAt = at.UTC()
	return nil
}

func (l *Loan) Approve(staffID string, at time.Time) error {
	if err := l.moveTo(StatusApproved, "approve", at); err != nil {
		return err
	}
	approved := at.UTC()
	l.ApprovalDate = &approved
	l.StaffID = staffID
	return nil
}

func (l *Loan) Reject(staffID string, at time.Time) error {
	if err := l.moveTo(StatusRejected, "reject", at); err != nil {
		return err
	}
	l.StaffID = staffID
	return nil
}

// Disburse releases the funds: the whole principal becomes outstanding and the
// first installment falls due one month after disbursementDate. Funds cannot
// go out on a day before the approval.
func (l *Loan) Disburse(staffID string, disbursementDate time.Time) error {
	if l.Status == StatusApproved && l.ApprovalDate != nil && disbursementDate.Before(dates.StartOfDay(*l.ApprovalDate)) {
		return InvalidField("disbursement_date", "must not be before the approval date "+dates.FormatDate(*l.ApprovalDate))
	}
	if err := l.moveTo(StatusDisbursed, "disburse", disbursementDate); err != nil {
		return err
	}
	d := disbursementDate.UTC()
	next := dates.AddMonths(d, 1)
	l.DisbursementDate = &d
	l.NextPaymentDate = &next
	l.OutstandingBalance = l.PrincipalAmount
	l.StaffID = staffID
	return nil
}

func (l *Loan) Activate(at time.Time) error {
	return l.moveTo(StatusActive, "activate", at)
}

// RecordPayment applies amount to the outstanding balance and returns the part
// actually applied (amount capped at the balance). Paying the balance off
// completes the loan.
func (l *Loan) RecordPayment(amount decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	if l.Status != StatusActive {
		return decimal.Zero, &TransitionError{From: l.Status, Action: "record a payment on"}
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	applied := decimal.Min(amount, l.OutstandingBalance)
	l.OutstandingBalance = l.OutstandingBalance.Sub(applied)

	next := l.followingDueDate(at)
	l.NextPaymentDate = &next

	if l.OutstandingBalance.IsZero() {
		if err := l.moveTo(StatusCompleted, "complete", at); err != nil {
			return decimal.Zero, err
		}
		l.NextPaymentDate = nil
	}
	return applied, nil
}

// followingDueDate is the first schedule date after the current one. Dates are
// always counted from the disbursement date so a month-end anchor survives
// short months (Jan 31 -> Feb 28 -> Mar 31).
func (l *Loan) followingDueDate(at time.Time) time.Time {
	if l.DisbursementDate == nil {
		return dates.AddMonths(at.UTC(), 1)
	}
	anchor := *l.DisbursementDate
	if l.NextPaymentDate == nil {
		return dates.AddMonths(anchor, 1)
	}
	// k is the installment the current date stands for
	k := 1
	for dates.AddMonths(anchor, k).Before(*l.NextPaymentDate) {
		k++
	}
	return dates.AddMonths(anchor, k+1)
}

func (l *Loan) MarkDefaulted(at time.Time) error {
	return l.moveTo(StatusDefaulted, "mark defaulted", at)
}

// IsOverdue is true for an active loan whose next installment date has passed.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == StatusActive && l.NextPaymentDate != nil && l.NextPaymentDate.Before(now)
}
