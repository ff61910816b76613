package loan

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sacco-lending/pkg/id"
)

type ApplicationInput struct {
	MemberID        string
	LoanType        Type
	PrincipalAmount decimal.Decimal
	InterestRate    decimal.Decimal
	TermMonths      int
	Guarantors      []string
	Purpose         string
}

// NewApplication validates in and returns a pending loan. Every rejected
// field is reported in a single *ValidationError.
func NewApplication(in ApplicationInput, now time.Time) (*Loan, error) {
	verr := &ValidationError{}
	memberID := strings.TrimSpace(in.MemberID)
	if memberID == "" {
		verr.add("member_id", "is required")
	}
	if !in.LoanType.Valid() {
		verr.add("loan_type", "must be one of emergency, development, education, business")
	}
	checkTerms(verr, in.PrincipalAmount, in.InterestRate, in.TermMonths)

	guarantors := make([]string, 0, len(in.Guarantors))
	for _, g := range in.Guarantors {
		if g = strings.TrimSpace(g); g != "" {
			guarantors = append(guarantors, g)
		}
	}
	if in.LoanType.RequiresGuarantor() && len(guarantors) == 0 {
		verr.add("guarantors", "at least one guarantor is required for "+string(in.LoanType)+" loans")
	}
	purpose := strings.TrimSpace(in.Purpose)
	if purpose == "" {
		verr.add("purpose", "is required")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	monthly, err := ComputeMonthlyPayment(in.PrincipalAmount, in.InterestRate, in.TermMonths)
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	return &Loan{
		LoanID:             id.NewID32(),
		MemberID:           memberID,
		LoanType:           in.LoanType,
		PrincipalAmount:    in.PrincipalAmount,
		InterestRate:       in.InterestRate,
		TermMonths:         in.TermMonths,
		MonthlyPayment:     monthly,
		OutstandingBalance: decimal.Zero,
		Status:             StatusPending,
		ApplicationDate:    now,
		Guarantors:         guarantors,
		Purpose:            purpose,
		StatusUpdatedAt:    now,
	}, nil
}

// Amend changes the loan terms. Terms are frozen once funds are released.
func (l *Loan) Amend(principal, annualRatePercent decimal.Decimal, termMonths int) error {
	if l.Status != StatusPending && l.Status != StatusApproved {
		return &TransitionError{From: l.Status, Action: "amend"}
	}
	verr := &ValidationError{}
	checkTerms(verr, principal, annualRatePercent, termMonths)
	if len(verr.Fields) > 0 {
		return verr
	}
	monthly, err := ComputeMonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return err
	}
	l.PrincipalAmount = principal
	l.InterestRate = annualRatePercent
	l.TermMonths = termMonths
	l.MonthlyPayment = monthly
	return nil
}

func checkTerms(verr *ValidationError, principal, rate decimal.Decimal, term int) {
	if !principal.IsPositive() {
		verr.add("principal_amount", "must be greater than zero")
	}
	if rate.IsNegative() {
		verr.add("interest_rate", "must not be negative")
	}
	if !IsAllowedTerm(term) {
		verr.add("term_months", "must be one of 12, 18, 24, 30, 36, 48")
	}
}
