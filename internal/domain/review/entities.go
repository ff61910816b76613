package review

import (
	"time"

	"gorm.io/gorm"
)

// Action is the staff decision a review row records.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionDisburse Action = "disburse"
	ActionActivate Action = "activate"
	ActionDefault  Action = "default"
)

// Table: loan_reviews. One row per staff decision on a loan.
type Review struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ReviewID string `gorm:"column:review_id;type:char(32);not null;uniqueIndex:ux_loan_reviews_review_id" json:"review_id"`
	// FK to loans.id (numeric)
	LoanID    uint64         `gorm:"column:loan_id;not null;index:idx_loan_reviews_loan" json:"-"`
	Action Action `gorm:"column:action;size:16;not null" json:"action"`
	// loan status before and after the decision
	FromStatus string         `gorm:"column:from_status;size:16" json:"from_status"`
	ToStatus   string         `gorm:"column:to_status;size:16" json:"to_status"`
	StaffID    string         `gorm:"column:staff_id;size:64" json:"staff_id,omitempty"`
	Note       string         `gorm:"column:note;type:text" json:"note,omitempty"`
	ActedAt    time.Time      `gorm:"column:acted_at;not null" json:"acted_at"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Review) TableName() string { return "loan_reviews" }
