package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "sacco-lending/internal/domain/loan"
	"sacco-lending/pkg/dates"
	"sacco-lending/pkg/money"
)

// maxListLimit caps a single page of GET /loans.
const maxListLimit = 200

// CreateInput is an application as submitted by a member. A nil InterestRate
// or zero TermMonths takes the product default.
type CreateInput struct {
	MemberID        string
	LoanType        string
	PrincipalAmount decimal.Decimal
	InterestRate    *decimal.Decimal
	TermMonths      int
	Guarantors      []string
	Purpose         string
}

// AmendInput carries the terms to change; nil fields keep their current value.
type AmendInput struct {
	PrincipalAmount *decimal.Decimal
	InterestRate    *decimal.Decimal
	TermMonths      *int
}

type ListInput struct {
	Status   string
	LoanType string
	MemberID string
	Limit    int
	Offset   int
}

type LoanDTO struct {
	LoanID             string          `json:"loan_id"`
	MemberID           string          `json:"member_id"`
	LoanType           string          `json:"loan_type"`
	PrincipalAmount    decimal.Decimal `json:"principal_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TermMonths         int             `json:"term_months"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	MonthlyPaymentText string          `json:"monthly_payment_display"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	OutstandingText    string          `json:"outstanding_balance_display"`
	Status             string          `json:"status"`
	ApplicationDate    string          `json:"application_date"`
	ApprovalDate       string          `json:"approval_date,omitempty"`
	DisbursementDate   string          `json:"disbursement_date,omitempty"`
	NextPaymentDate    string          `json:"next_payment_date,omitempty"`
	Overdue            bool            `json:"overdue"`
	Guarantors         []string        `json:"guarantors"`
	Purpose            string          `json:"purpose,omitempty"`
	StaffID            string          `json:"staff_id,omitempty"`
}

type InstallmentDTO struct {
	Number    int             `json:"number"`
	DueDate   string          `json:"due_date"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

type ScheduleDTO struct {
	LoanID         string           `json:"loan_id"`
	MonthlyPayment decimal.Decimal  `json:"monthly_payment"`
	TotalPayable   decimal.Decimal  `json:"total_payable"`
	TotalInterest  decimal.Decimal  `json:"total_interest"`
	Installments   []InstallmentDTO `json:"installments"`
}

type ProductDTO struct {
	domain.Product
	Range string `json:"range_display"`
}

func toDTO(l *domain.Loan, now time.Time) *LoanDTO {
	guarantors := l.Guarantors
	if guarantors == nil {
		guarantors = []string{}
	}
	return &LoanDTO{
		LoanID:             l.LoanID,
		MemberID:           l.MemberID,
		LoanType:           string(l.LoanType),
		PrincipalAmount:    l.PrincipalAmount,
		InterestRate:       l.InterestRate,
		TermMonths:         l.TermMonths,
		MonthlyPayment:     l.MonthlyPayment,
		MonthlyPaymentText: money.FormatUGX(l.MonthlyPayment),
		OutstandingBalance: l.OutstandingBalance,
		OutstandingText:    money.FormatUGX(l.OutstandingBalance),
		Status:             string(l.Status),
		ApplicationDate:    dates.FormatDate(l.ApplicationDate),
		ApprovalDate:       optDate(l.ApprovalDate),
		DisbursementDate:   optDate(l.DisbursementDate),
		NextPaymentDate:    optDate(l.NextPaymentDate),
		Overdue:            l.IsOverdue(now),
		Guarantors:         guarantors,
		Purpose:            l.Purpose,
		StaffID:            l.StaffID,
	}
}

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return dates.FormatDate(*t)
}
