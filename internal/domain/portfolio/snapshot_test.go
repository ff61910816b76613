package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"sacco-lending/internal/domain/loan"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mk(status loan.Status, principal, outstanding string) loan.Loan {
	return loan.Loan{Status: status, PrincipalAmount: d(principal), OutstandingBalance: d(outstanding)}
}

func TestSummarize_Empty(t *testing.T) {
	for _, in := range [][]loan.Loan{nil, {}} {
		s := Summarize(in)
		assert.Zero(t, s.ActiveCount)
		assert.Zero(t, s.PendingCount)
		assert.Zero(t, s.DefaultedCount)
		assert.True(t, s.OutstandingTotal.IsZero())
		assert.Equal(t, RiskBuckets{}, s.RiskBuckets)
		assert.Empty(t, s.ByStatus)
		assert.True(t, s.AtRiskOutstanding.IsZero())
		assert.True(t, s.PortfolioAtRisk.IsZero())
	}
}

func TestSummarize_ActiveLowAndDefaulted(t *testing.T) {
	s := Summarize([]loan.Loan{
		mk(loan.StatusActive, "4000000", "1000000"),
		mk(loan.StatusDefaulted, "5000000", "4000000"),
	})
	assert.Equal(t, RiskBuckets{Low: 1, Medium: 0, High: 1}, s.RiskBuckets)
	assert.Equal(t, 1, s.ActiveCount)
	assert.Equal(t, 1, s.DefaultedCount)
	assert.True(t, s.OutstandingTotal.Equal(d("1000000")))
	assert.True(t, s.AtRiskOutstanding.Equal(d("4000000")))
	assert.True(t, s.PortfolioAtRisk.Equal(d("0.8")), s.PortfolioAtRisk.String())
}

func TestSummarize_Counts(t *testing.T) {
	loans := []loan.Loan{
		mk(loan.StatusActive, "10000000", "7500000"),
		mk(loan.StatusActive, "2000000", "1500000"),
		mk(loan.StatusCompleted, "3000000", "0"),
		mk(loan.StatusPending, "2800000", "0"),
		mk(loan.StatusPending, "1000000", "0"),
		mk(loan.StatusDefaulted, "8000000", "6500000"),
		mk(loan.StatusApproved, "500000", "0"),
		mk(loan.StatusDisbursed, "600000", "600000"),
		mk(loan.StatusRejected, "700000", "0"),
	}
	s := Summarize(loans)
	assert.Equal(t, 2, s.ActiveCount)
	assert.Equal(t, 2, s.PendingCount)
	assert.Equal(t, 1, s.DefaultedCount)
	assert.True(t, s.OutstandingTotal.Equal(d("9000000")))
	assert.Equal(t, RiskBuckets{Low: 0, Medium: 0, High: 1}, s.RiskBuckets)
	assert.True(t, s.AtRiskOutstanding.Equal(d("6500000")))
	assert.True(t, s.PortfolioAtRisk.Equal(d("0.4194")), s.PortfolioAtRisk.String())

	assert.Equal(t, 2, s.ByStatus[loan.StatusPending].Count)
	assert.True(t, s.ByStatus[loan.StatusPending].Principal.Equal(d("3800000")))
	assert.True(t, s.ByStatus[loan.StatusDisbursed].Outstanding.Equal(d("600000")))
	assert.Equal(t, 1, s.ByStatus[loan.StatusRejected].Count)
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		l    loan.Loan
		want Bucket
	}{
		{"exactly 0.30 is low", mk(loan.StatusActive, "1000000", "300000"), BucketLow},
		{"just above 0.30 is medium", mk(loan.StatusActive, "1000000", "300001"), BucketMedium},
		{"exactly 0.70 is medium", mk(loan.StatusActive, "1000000", "700000"), BucketMedium},
		{"above 0.70 is unbucketed", mk(loan.StatusActive, "1000000", "700001"), BucketNone},
		{"freshly activated is unbucketed", mk(loan.StatusActive, "1000000", "1000000"), BucketNone},
		{"fully paid active is low", mk(loan.StatusActive, "1000000", "0"), BucketLow},
		{"defaulted with small balance is high", mk(loan.StatusDefaulted, "1000000", "10"), BucketHigh},
		{"pending is unbucketed", mk(loan.StatusPending, "1000000", "0"), BucketNone},
		{"completed is unbucketed", mk(loan.StatusCompleted, "1000000", "0"), BucketNone},
		{"disbursed is unbucketed", mk(loan.StatusDisbursed, "1000000", "1000000"), BucketNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.l))
		})
	}
}

func TestSummarize_IsPure(t *testing.T) {
	loans := []loan.Loan{mk(loan.StatusActive, "1000000", "500000")}
	a := Summarize(loans)
	b := Summarize(loans)
	assert.Equal(t, a.RiskBuckets, b.RiskBuckets)
	assert.True(t, a.OutstandingTotal.Equal(b.OutstandingTotal))
	assert.True(t, loans[0].OutstandingBalance.Equal(d("500000")))
}

func TestSummarize_YoungBookHasNoRisk(t *testing.T) {
	s := Summarize([]loan.Loan{
		mk(loan.StatusActive, "2000000", "2000000"),
		mk(loan.StatusActive, "5000000", "4800000"),
	})
	assert.Equal(t, RiskBuckets{}, s.RiskBuckets)
	assert.True(t, s.AtRiskOutstanding.IsZero())
	assert.True(t, s.PortfolioAtRisk.IsZero(), s.PortfolioAtRisk.String())
	assert.True(t, s.OutstandingTotal.Equal(d("6800000")))
}
