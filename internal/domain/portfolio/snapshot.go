// Package portfolio derives book-level statistics from a set of loans.
package portfolio

import (
	"github.com/shopspring/decimal"

	"sacco-lending/internal/domain/loan"
)

var (
	lowCeiling    = decimal.RequireFromString("0.30")
	mediumCeiling = decimal.RequireFromString("0.70")
)

type RiskBuckets struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type StatusTotals struct {
	Count       int             `json:"count"`
	Principal   decimal.Decimal `json:"principal"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Snapshot is computed on demand and never stored.
type Snapshot struct {
	ActiveCount       int                          `json:"active_count"`
	OutstandingTotal  decimal.Decimal              `json:"outstanding_total"`
	PendingCount      int                          `json:"pending_count"`
	DefaultedCount    int                          `json:"defaulted_count"`
	RiskBuckets       RiskBuckets                  `json:"risk_buckets"`
	ByStatus          map[loan.Status]StatusTotals `json:"by_status"`
	AtRiskOutstanding decimal.Decimal              `json:"at_risk_outstanding"`
	PortfolioAtRisk   decimal.Decimal              `json:"portfolio_at_risk"`
}

type Bucket string

const (
	BucketNone   Bucket = ""
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

// Classify places an active or defaulted loan by its remaining-balance ratio.
// Boundaries belong to the lower bucket. Defaulted loans are always high; an
// active loan above the medium ceiling is still early in its term and stays
// unbucketed.
func Classify(l loan.Loan) Bucket {
	switch l.Status {
	case loan.StatusDefaulted:
		return BucketHigh
	case loan.StatusActive:
	default:
		return BucketNone
	}
	if !l.PrincipalAmount.IsPositive() {
		return BucketNone
	}
	ratio := l.OutstandingBalance.Div(l.PrincipalAmount)
	switch {
	case ratio.LessThanOrEqual(lowCeiling):
		return BucketLow
	case ratio.LessThanOrEqual(mediumCeiling):
		return BucketMedium
	default:
		return BucketNone
	}
}

// Summarize walks loans once. PortfolioAtRisk is the defaulted outstanding
// over the outstanding of every active and defaulted loan.
func Summarize(loans []loan.Loan) Snapshot {
	s := Snapshot{
		OutstandingTotal:  decimal.Zero,
		ByStatus:          make(map[loan.Status]StatusTotals),
		AtRiskOutstanding: decimal.Zero,
		PortfolioAtRisk:   decimal.Zero,
	}
	exposed := decimal.Zero
	for _, l := range loans {
		st := s.ByStatus[l.Status]
		st.Count++
		st.Principal = st.Principal.Add(l.PrincipalAmount)
		st.Outstanding = st.Outstanding.Add(l.OutstandingBalance)
		s.ByStatus[l.Status] = st

		switch l.Status {
		case loan.StatusActive:
			s.ActiveCount++
			s.OutstandingTotal = s.OutstandingTotal.Add(l.OutstandingBalance)
			exposed = exposed.Add(l.OutstandingBalance)
		case loan.StatusPending:
			s.PendingCount++
		case loan.StatusDefaulted:
			s.DefaultedCount++
			exposed = exposed.Add(l.OutstandingBalance)
		}

		switch Classify(l) {
		case BucketLow:
			s.RiskBuckets.Low++
		case BucketMedium:
			s.RiskBuckets.Medium++
		case BucketHigh:
			s.RiskBuckets.High++
			s.AtRiskOutstanding = s.AtRiskOutstanding.Add(l.OutstandingBalance)
		}
	}
	if exposed.IsPositive() {
		s.PortfolioAtRisk = s.AtRiskOutstanding.Div(exposed).Round(4)
	}
	return s
}
