package mysql

import (
	"context"

	reviewDomain "sacco-lending/internal/domain/review"

	"gorm.io/gorm"
)

type ReviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{db: db} }

func (r *ReviewRepository) Create(ctx context.Context, rv *reviewDomain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]reviewDomain.Review, error) {
	var out []reviewDomain.Review
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("acted_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
