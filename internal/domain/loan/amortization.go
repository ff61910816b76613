package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"sacco-lending/pkg/dates"
)

const (
	moneyPlaces = 2
	ratePlaces  = 18
)

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// ComputeMonthlyPayment returns the fixed installment M = P*r / (1 - (1+r)^-n),
// r being the monthly rate, rounded to 2 decimal places. A zero rate splits the
// principal evenly over the term.
func ComputeMonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, ErrInvalidTerm
	}
	if !principal.IsPositive() {
		return decimal.Zero, ErrInvalidPrincipal
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	n := decimal.NewFromInt(int64(termMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n).Round(moneyPlaces), nil
	}
	r := monthlyRate(annualRatePercent)
	f := compound(r, termMonths)
	return principal.Mul(r).Mul(f).Div(f.Sub(one)).Round(moneyPlaces), nil
}

// ComputeOutstandingBalance is max(0, principal - sum(payments)).
func ComputeOutstandingBalance(principal decimal.Decimal, payments []decimal.Decimal) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p)
	}
	return decimal.Max(decimal.Zero, principal.Sub(paid))
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsPerYear)
}

// compound is (1+r)^n.
func compound(r decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(r)
	f := one
	for i := 0; i < n; i++ {
		f = f.Mul(base).Round(ratePlaces)
	}
	return f
}

type Installment struct {
	Number    int             `json:"number"`
	DueDate   time.Time       `json:"due_date"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// BuildSchedule lays out the repayment plan, the first installment falling due
// one month after start. The last installment absorbs rounding so the balance
// ends at exactly zero.
func BuildSchedule(principal, annualRatePercent decimal.Decimal, termMonths int, start time.Time) ([]Installment, error) {
	payment, err := ComputeMonthlyPayment(principal, annualRatePercent, termMonths)
	if err != nil {
		return nil, err
	}
	r := monthlyRate(annualRatePercent)
	remaining := principal
	out := make([]Installment, 0, termMonths)
	for i := 1; i <= termMonths; i++ {
		interest := remaining.Mul(r).Round(moneyPlaces)
		principalPart := payment.Sub(interest)
		if i == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)
		out = append(out, Installment{
			Number:    i,
			DueDate:   dates.AddMonths(start, i),
			Payment:   principalPart.Add(interest),
			Principal: principalPart,
			Interest:  interest,
			Balance:   remaining,
		})
	}
	return out, nil
}

// Schedule builds the plan for l from its disbursement date, or from the
// application date while the loan has not been disbursed.
func (l *Loan) Schedule() ([]Installment, error) {
	start := l.ApplicationDate
	if l.DisbursementDate != nil {
		start = *l.DisbursementDate
	}
	return BuildSchedule(l.PrincipalAmount, l.InterestRate, l.TermMonths, start)
}
