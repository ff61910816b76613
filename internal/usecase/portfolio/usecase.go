package portfolio

import (
	"context"
	"time"

	"go.uber.org/zap"

	domainLoan "sacco-lending/internal/domain/loan"
	domain "sacco-lending/internal/domain/portfolio"
	"sacco-lending/pkg/money"
)

// SummaryDTO is the snapshot plus the figures the dashboard shows verbatim.
type SummaryDTO struct {
	domain.Snapshot
	OverdueCount     int       `json:"overdue_count"`
	OutstandingText  string    `json:"outstanding_total_display"`
	AtRiskText       string    `json:"at_risk_outstanding_display"`
	PortfolioAtRiskP string    `json:"portfolio_at_risk_percent"`
	GeneratedAt      time.Time `json:"generated_at"`
}

type Usecase struct {
	repo domainLoan.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUsecase(r domainLoan.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log, now: time.Now}
}

func (u *Usecase) Summary(ctx context.Context) (*SummaryDTO, error) {
	loans, err := u.repo.ListForPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	snap := domain.Summarize(loans)

	overdue := 0
	for i := range loans {
		if loans[i].IsOverdue(now) {
			overdue++
		}
	}

	u.log.Debug("portfolio summarised",
		zap.Int("loans", len(loans)),
		zap.Int("active", snap.ActiveCount),
		zap.String("par", snap.PortfolioAtRisk.String()),
	)
	return &SummaryDTO{
		Snapshot:         snap,
		OverdueCount:     overdue,
		OutstandingText:  money.FormatUGX(snap.OutstandingTotal),
		AtRiskText:       money.FormatUGX(snap.AtRiskOutstanding),
		PortfolioAtRiskP: snap.PortfolioAtRisk.Shift(2).StringFixed(2) + "%",
		GeneratedAt:      now,
	}, nil
}
