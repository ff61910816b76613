package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"
)

// DecisionInput drives approve, reject, activate and default. Zero At means now.
type DecisionInput struct {
	LoanID  string
	StaffID string
	Note    string
	At      time.Time
}

type DisburseInput struct {
	LoanID           string
	StaffID          string
	Note             string
	DisbursementDate time.Time // date-only is fine; zero means today
}

type PaymentInput struct {
	LoanID    string
	Amount    decimal.Decimal
	Channel   string
	Provider  string // required for mobile_money
	Reference string
	StaffID   string
	PaidAt    time.Time
}

type ReviewDTO struct {
	ReviewID   string    `json:"review_id"`
	LoanID     string    `json:"loan_id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	Status     string    `json:"status"`
	StaffID    string    `json:"staff_id,omitempty"`
	Note       string    `json:"note,omitempty"`
	ActedAt    time.Time `json:"acted_at"`
	// set by disburse
	OutstandingBalance *decimal.Decimal `json:"outstanding_balance,omitempty"`
	NextPaymentDate    string           `json:"next_payment_date,omitempty"`
}

type PaymentDTO struct {
	RepaymentID     string          `json:"repayment_id"`
	LoanID          string          `json:"loan_id"`
	Amount          decimal.Decimal `json:"amount"`
	Applied         decimal.Decimal `json:"applied"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	BalanceText     string          `json:"balance_after_display"`
	Status          string          `json:"status"`
	NextPaymentDate string          `json:"next_payment_date,omitempty"`
	Channel         string          `json:"channel"`
	Provider        string          `json:"provider,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	PaidAt          time.Time       `json:"paid_at"`
}
