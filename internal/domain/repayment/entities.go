package repayment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Channel string

const (
	ChannelCash        Channel = "cash"
	ChannelBank        Channel = "bank"
	ChannelMobileMoney Channel = "mobile_money"
	ChannelCheckoff    Channel = "checkoff"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelCash, ChannelBank, ChannelMobileMoney, ChannelCheckoff:
		return true
	}
	return false
}

type Provider string

const (
	ProviderMTN    Provider = "mtn"
	ProviderAirtel Provider = "airtel"
)

func (p Provider) Valid() bool { return p == ProviderMTN || p == ProviderAirtel }

// Table: repayments. Amount is what the member handed over, Applied what
// reduced the balance; they differ only on the final overpaying installment.
type Repayment struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RepaymentID  string          `gorm:"column:repayment_id;type:char(32);not null;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID       uint64          `gorm:"column:loan_id;not null;index:idx_repayments_loan" json:"-"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Applied      decimal.Decimal `gorm:"column:applied;type:decimal(18,2);not null" json:"applied"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2);not null" json:"balance_after"`
	Channel      Channel         `gorm:"column:channel;size:16;not null" json:"channel"`
	Provider     Provider        `gorm:"column:provider;size:16" json:"provider,omitempty"`
	Reference    string          `gorm:"column:reference;size:64" json:"reference,omitempty"`
	StaffID      string          `gorm:"column:staff_id;size:64" json:"staff_id,omitempty"`
	PaidAt       time.Time       `gorm:"column:paid_at;not null" json:"paid_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	DeletedAt    gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }
