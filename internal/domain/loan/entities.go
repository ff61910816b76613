package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
)

var statuses = []Status{
	StatusPending, StatusApproved, StatusRejected, StatusDisbursed,
	StatusActive, StatusCompleted, StatusDefaulted,
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status { return append([]Status(nil), statuses...) }

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

type Type string

const (
	TypeEmergency   Type = "emergency"
	TypeDevelopment Type = "development"
	TypeEducation   Type = "education"
	TypeBusiness    Type = "business"
)

var types = []Type{TypeEmergency, TypeDevelopment, TypeEducation, TypeBusiness}

func Types() []Type { return append([]Type(nil), types...) }

func (t Type) Valid() bool {
	for _, v := range types {
		if t == v {
			return true
		}
	}
	return false
}

// RequiresGuarantor is true for products that need collateral.
func (t Type) RequiresGuarantor() bool {
	p, ok := ProductFor(t)
	return ok && p.CollateralRequired
}

// AllowedTerms are the repayment periods, in months, a member may apply for.
var AllowedTerms = []int{12, 18, 24, 30, 36, 48}

func IsAllowedTerm(months int) bool {
	for _, v := range AllowedTerms {
		if v == months {
			return true
		}
	}
	return false
}

type Loan struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string          `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	MemberID           string          `gorm:"column:member_id;size:64;index:idx_loans_member_status" json:"member_id"`
	LoanType           Type            `gorm:"column:loan_type;size:16;not null" json:"loan_type"`
	PrincipalAmount    decimal.Decimal `gorm:"column:principal_amount;type:decimal(18,2);not null" json:"principal_amount"`
	InterestRate       decimal.Decimal `gorm:"column:interest_rate;type:decimal(7,4);not null" json:"interest_rate"`
	TermMonths         int             `gorm:"column:term_months;not null" json:"term_months"`
	MonthlyPayment     decimal.Decimal `gorm:"column:monthly_payment;type:decimal(18,2);not null" json:"monthly_payment"`
	OutstandingBalance decimal.Decimal `gorm:"column:outstanding_balance;type:decimal(18,2);not null" json:"outstanding_balance"`
	Status             Status          `gorm:"column:status;size:16;not null;default:pending;index:idx_loans_member_status;index:idx_loans_status" json:"status"`
	ApplicationDate    time.Time       `gorm:"column:application_date;not null" json:"application_date"`
	ApprovalDate       *time.Time      `gorm:"column:approval_date" json:"approval_date,omitempty"`
	DisbursementDate   *time.Time      `gorm:"column:disbursement_date" json:"disbursement_date,omitempty"`
	NextPaymentDate    *time.Time      `gorm:"column:next_payment_date" json:"next_payment_date,omitempty"`
	Guarantors         []string        `gorm:"column:guarantors;type:text;serializer:json" json:"guarantors"`
	Purpose            string          `gorm:"column:purpose;type:text" json:"purpose"`
	StaffID            string          `gorm:"column:staff_id;size:64" json:"staff_id,omitempty"`
	StatusUpdatedAt    time.Time       `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// BeforeSave keeps the stored installment in step with the loan terms.
func (l *Loan) BeforeSave(*gorm.DB) error {
	m, err := ComputeMonthlyPayment(l.PrincipalAmount, l.InterestRate, l.TermMonths)
	if err != nil {
		return err
	}
	l.MonthlyPayment = m
	return nil
}
