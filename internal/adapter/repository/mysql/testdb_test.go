package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	loanDomain "sacco-lending/internal/domain/loan"
	"sacco-lending/pkg/id"
)

// openTestDB creates an in-memory sqlite DB with the lending schema. A single
// connection keeps every statement on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(memberID string, status loanDomain.Status, appliedAt time.Time) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:          id.NewID32(),
		MemberID:        memberID,
		LoanType:        loanDomain.TypeDevelopment,
		PrincipalAmount: decimal.NewFromInt(2_000_000),
		InterestRate:    decimal.NewFromInt(15),
		TermMonths:      24,
		Status:          status,
		ApplicationDate: appliedAt,
		StatusUpdatedAt: appliedAt,
		Guarantors:      []string{"M-0007"},
		Purpose:         "Dairy cows",
	}
}
